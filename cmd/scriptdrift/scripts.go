package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScriptsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List the scripts in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLIVE\tWATCH")
			for _, s := range svc.Catalog().Scripts() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Live, s.Watch)
			}
			return tw.Flush()
		},
	}
}
