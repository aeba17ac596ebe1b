// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"fmt"
	"strconv"

	"github.com/z5labs/appconfig"

	"github.com/spf13/cobra"
)

func newGetCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a setting",
		Long: `Print the value of a setting from the appSettings section, or from
the section given with --section. Missing or empty settings fail unless
--default is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.manager(cmd)
			if err != nil {
				return err
			}

			section, _ := cmd.Flags().GetString("section")
			v, err := lookup(cmd, m, args[0], section)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringP("section", "s", "", "section holding the setting (default: appSettings)")
	cmd.Flags().String("default", "", "value printed when the setting is missing or empty")
	return cmd
}

func lookup(cmd *cobra.Command, s appconfig.Settings, key, section string) (string, error) {
	if !cmd.Flags().Changed("default") {
		if section == "" {
			return appconfig.GetSetting[string](s, key)
		}
		return appconfig.GetSectionSetting[string](s, key, section)
	}

	fallback, _ := cmd.Flags().GetString("default")
	if section == "" {
		return appconfig.GetSettingOrDefault(s, key, fallback)
	}
	return appconfig.GetSectionSettingOrDefault(s, key, section, fallback)
}

func newHasCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has KEY",
		Short: "Report whether a setting exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.manager(cmd)
			if err != nil {
				return err
			}

			section, _ := cmd.Flags().GetString("section")
			ok := m.HasSetting(args[0])
			if section != "" {
				ok = m.HasSectionSetting(args[0], section)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return nil
		},
	}
	cmd.Flags().StringP("section", "s", "", "section holding the setting (default: appSettings)")
	return cmd
}
