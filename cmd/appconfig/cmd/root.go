// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cmd implements the appconfig command line tool for reading
// and editing application configuration files.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/z5labs/appconfig"
	"github.com/z5labs/appconfig/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the appconfig command line with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

type rootOptions struct {
	v *viper.Viper
}

// NewRootCommand returns the appconfig command and all of its
// subcommands. Every persistent flag can also be set through an
// APPCONFIG_ prefixed environment variable, e.g. APPCONFIG_EXE.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{
		v: viper.New(),
	}

	root := &cobra.Command{
		Use:   "appconfig",
		Short: "Inspect and edit application configuration",
		Long: `appconfig reads settings, sections and connection strings from the
layered configuration of an executable and edits them at a chosen level.

Levels:
  none     - the executable configuration shared by all users
  roaming  - the roaming user configuration
  local    - the local user configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.v.BindPFlags(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.String("name", "", "application name (default: executable base name)")
	flags.String("exe", "", "executable path whose configuration is used")
	flags.String("machine-config", "", "machine configuration file")
	flags.String("user-config-dir", "", "directory holding the user configuration")
	flags.String("format", string(config.YAML), "format of files without a known extension: yaml, json or toml")
	flags.String("env-prefix", "", "layer environment variables with this prefix over the configuration")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")

	o.v.SetEnvPrefix("APPCONFIG")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	root.AddCommand(
		newGetCommand(o),
		newHasCommand(o),
		newSectionsCommand(o),
		newConnCommand(o),
		newSetCommand(o),
		newUnsetCommand(o),
		newWatchCommand(o),
	)
	return root
}

func (o *rootOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(o.v.GetString("log-level")))
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(h), nil
}

func (o *rootOptions) manager(cmd *cobra.Command, extra ...appconfig.Option) (*appconfig.ConfigurationManager, error) {
	log, err := o.logger(cmd)
	if err != nil {
		return nil, err
	}

	format, err := config.ParseFormat(o.v.GetString("format"))
	if err != nil {
		return nil, err
	}

	opts := []appconfig.Option{
		appconfig.LogHandler(log.Handler()),
		appconfig.DefaultFormat(format),
	}
	if name := o.v.GetString("name"); name != "" {
		opts = append(opts, appconfig.Name(name))
	}
	if exe := o.v.GetString("exe"); exe != "" {
		opts = append(opts, appconfig.ExePath(exe))
	}
	if f := o.v.GetString("machine-config"); f != "" {
		opts = append(opts, appconfig.MachineConfigFile(f))
	}
	if dir := o.v.GetString("user-config-dir"); dir != "" {
		opts = append(opts, appconfig.UserConfigDir(dir))
	}
	if prefix := o.v.GetString("env-prefix"); prefix != "" {
		opts = append(opts, appconfig.Sources(config.FromEnv(prefix)))
	}
	return appconfig.NewManager(append(opts, extra...)...)
}

func parseLevel(s string) (appconfig.UserLevel, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return appconfig.None, nil
	case "roaming":
		return appconfig.PerUserRoaming, nil
	case "local":
		return appconfig.PerUserRoamingAndLocal, nil
	default:
		return 0, fmt.Errorf("unknown level: %s", s)
	}
}

func parseSaveMode(s string) (appconfig.SaveMode, error) {
	switch strings.ToLower(s) {
	case "", "modified":
		return appconfig.SaveModeModified, nil
	case "minimal":
		return appconfig.SaveModeMinimal, nil
	case "full":
		return appconfig.SaveModeFull, nil
	default:
		return 0, fmt.Errorf("unknown save mode: %s", s)
	}
}
