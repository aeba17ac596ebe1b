// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/z5labs/appconfig"

	"github.com/spf13/cobra"
)

func newSectionsCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the sections and section groups visible at a level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.manager(cmd)
			if err != nil {
				return err
			}

			levelName, _ := cmd.Flags().GetString("level")
			level, err := parseLevel(levelName)
			if err != nil {
				return err
			}
			doc, err := m.OpenExeConfiguration(level)
			if err != nil {
				return err
			}

			printGroup(cmd.OutOrStdout(), doc.RootSectionGroup(), 0)
			return nil
		},
	}
	cmd.Flags().StringP("level", "l", "none", "level to open: none, roaming or local")
	return cmd
}

func printGroup(w io.Writer, g *appconfig.SectionGroup, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sec := range g.Sections() {
		fmt.Fprintf(w, "%s%s (%d)\n", indent, lastSegment(sec.Name()), sec.Len())
	}
	for _, sub := range g.SectionGroups() {
		fmt.Fprintf(w, "%s%s/\n", indent, lastSegment(sub.Name()))
		printGroup(w, sub, depth+1)
	}
}

func lastSegment(name string) string {
	i := strings.LastIndexByte(name, '/')
	return name[i+1:]
}
