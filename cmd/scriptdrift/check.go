package main

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/report"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [script...]",
		Short: "Compare catalog scripts against their live versions",
		Long:  "Compare the named catalog scripts, or every script when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = svc.Catalog().Names()
			}

			var (
				results []*report.Result
				failed  []string
			)
			for _, name := range names {
				res, err := svc.Compare(cmd.Context(), name, false)
				if err != nil {
					if !warnFetchFailed(cmd, name, err) {
						return err
					}
					failed = append(failed, name)
					continue
				}
				if err := emit(cmd, opts, res); err != nil {
					return err
				}
				results = append(results, res)
			}

			if opts.jsonOut {
				if err := renderJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d of %d scripts could not be compared: %s", len(failed), len(names), joinNames(failed))
			}
			return nil
		},
	}
}

// emit prints one result in text mode and runs the optional verification
func emit(cmd *cobra.Command, opts *options, res *report.Result) error {
	if opts.verify {
		if err := verify(res.Report); err != nil {
			return err
		}
	}
	if !opts.jsonOut {
		renderReport(cmd.OutOrStdout(), res.Report)
	}
	return nil
}

// warnFetchFailed prints the retrieval warning and reports whether err was one
func warnFetchFailed(cmd *cobra.Command, name string, err error) bool {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeFetchFailed {
		return false
	}

	s := newStyles(cmd.ErrOrStderr())
	label := "Failed to load scripts for comparison."
	if name != "" {
		label = name + ": " + label
	}
	fmt.Fprintln(cmd.ErrOrStderr(), s.warn.Render(label))
	fmt.Fprintln(cmd.ErrOrStderr(), "  "+appErr.Details)
	return true
}
