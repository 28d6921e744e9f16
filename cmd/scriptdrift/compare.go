package main

import (
	"github.com/spf13/cobra"

	"github.com/nahidhasan98/script-drift/internal/report"
)

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <baseline> <live>",
		Short: "Compare two scripts by locator",
		Long: `Compare two scripts by locator. A locator is an http(s) URL,
github://owner/repo/path[@ref], file://path or a bare local path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}

			res, err := svc.CompareLocators(cmd.Context(), args[0], args[1], false)
			if err != nil {
				warnFetchFailed(cmd, "", err)
				return err
			}

			if err := emit(cmd, opts, res); err != nil {
				return err
			}
			if opts.jsonOut {
				return renderJSON(cmd.OutOrStdout(), []*report.Result{res})
			}
			return nil
		},
	}
}
