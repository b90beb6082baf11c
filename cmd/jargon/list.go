package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [group...]",
	Short: "List registered groups and their cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := selectGroups(args)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%d case(s)\n", g.Name(), g.Len())
			for _, name := range g.CaseNames() {
				fmt.Fprintf(w, "\t%s\n", name)
			}
		}
		return w.Flush()
	},
}
