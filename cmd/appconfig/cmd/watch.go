// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"time"

	"github.com/z5labs/appconfig"
	"github.com/z5labs/appconfig/internal/app"

	"github.com/spf13/cobra"
)

func newWatchCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the configuration files and log every reload",
		Long: `Watch the configuration files until interrupted. Reloads are logged
at info level, use --log-level info to see them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := o.logger(cmd)
			if err != nil {
				return err
			}

			debounce, _ := cmd.Flags().GetDuration("debounce")
			m, err := o.manager(cmd, appconfig.WatchDebounce(debounce))
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), log, "watch", app.Watch(m), app.HealthHook(m))
		},
	}
	cmd.Flags().Duration("debounce", 500*time.Millisecond, "delay between a file change and the reload")
	return cmd
}
