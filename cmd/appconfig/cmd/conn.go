// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/z5labs/appconfig"

	"github.com/spf13/cobra"
)

func newConnCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conn",
		Short: "Inspect and edit connection strings",
	}
	cmd.AddCommand(
		newConnListCommand(o),
		newConnGetCommand(o),
		newConnSetCommand(o),
		newConnRemoveCommand(o),
	)
	return cmd
}

func newConnListCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connection string names and providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.manager(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, cs := range m.ConnectionStrings() {
				fmt.Fprintf(tw, "%s\t%s\n", cs.Name, cs.ProviderName)
			}
			return tw.Flush()
		},
	}
}

func newConnGetCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print a connection string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.manager(cmd)
			if err != nil {
				return err
			}

			cs, ok := m.ConnectionStrings().Get(args[0])
			if !ok {
				return appconfig.ArgumentError{Name: "name", Reason: fmt.Sprintf("connection string %s not found", args[0])}
			}
			fmt.Fprintln(cmd.OutOrStdout(), cs.ConnectionString)
			return nil
		},
	}
}

func newConnSetCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set NAME CONNECTION_STRING",
		Short: "Add or replace a connection string at a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, _ := cmd.Flags().GetString("provider")
			return o.edit(cmd, func(doc appconfig.Document) error {
				return doc.SetConnectionString(appconfig.ConnectionString{
					Name:             args[0],
					ConnectionString: args[1],
					ProviderName:     provider,
				})
			})
		},
	}
	cmd.Flags().String("provider", "", "provider name of the connection")
	addEditFlags(cmd)
	return cmd
}

func newConnRemoveCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a connection string from a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.edit(cmd, func(doc appconfig.Document) error {
				doc.RemoveConnectionString(args[0])
				return nil
			})
		},
	}
	addEditFlags(cmd)
	return cmd
}
