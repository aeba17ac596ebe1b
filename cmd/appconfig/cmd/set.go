// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"github.com/z5labs/appconfig"

	"github.com/spf13/cobra"
)

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("level", "l", "none", "level to edit: none, roaming or local")
	cmd.Flags().String("mode", "modified", "save mode: modified, minimal or full")
	cmd.Flags().Bool("force", false, "write the file even if nothing changed")
}

// edit opens the document at the --level flag, applies f and saves it.
func (o *rootOptions) edit(cmd *cobra.Command, f func(appconfig.Document) error) error {
	m, err := o.manager(cmd)
	if err != nil {
		return err
	}

	levelName, _ := cmd.Flags().GetString("level")
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}
	modeName, _ := cmd.Flags().GetString("mode")
	mode, err := parseSaveMode(modeName)
	if err != nil {
		return err
	}

	doc, err := m.OpenExeConfiguration(level)
	if err != nil {
		return err
	}
	err = f(doc)
	if err != nil {
		return err
	}

	saveOpts := []appconfig.SaveOption{appconfig.WithSaveMode(mode)}
	if force, _ := cmd.Flags().GetBool("force"); force {
		saveOpts = append(saveOpts, appconfig.ForceSaveAll())
	}
	return doc.Save(saveOpts...)
}

func sectionOf(cmd *cobra.Command) string {
	section, _ := cmd.Flags().GetString("section")
	if section == "" {
		return "appSettings"
	}
	return section
}

func newSetCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a setting at a level",
		Long: `Set a setting in the appSettings section, or in the section given
with --section, and save the configuration file of the chosen level.
The section is created when it does not exist yet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.edit(cmd, func(doc appconfig.Document) error {
				sec, err := doc.AddSection(sectionOf(cmd))
				if err != nil {
					return err
				}
				return sec.Set(args[0], args[1])
			})
		},
	}
	cmd.Flags().StringP("section", "s", "", "section holding the setting (default: appSettings)")
	addEditFlags(cmd)
	return cmd
}

func newUnsetCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a setting from a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.edit(cmd, func(doc appconfig.Document) error {
				sec, ok := doc.GetSection(sectionOf(cmd))
				if !ok {
					return appconfig.SectionNotFoundError{Section: sectionOf(cmd)}
				}
				_, err := sec.Remove(args[0])
				return err
			})
		},
	}
	cmd.Flags().StringP("section", "s", "", "section holding the setting (default: appSettings)")
	addEditFlags(cmd)
	return cmd
}
