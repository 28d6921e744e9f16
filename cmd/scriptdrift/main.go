package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nahidhasan98/script-drift/internal/app"
	"github.com/nahidhasan98/script-drift/internal/config"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/report"
)

type options struct {
	catalogFile string
	backend     string
	hints       bool
	verify      bool
	jsonOut     bool
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, newStyles(os.Stderr).warn.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "scriptdrift",
		Short:         "Compare baseline SQL scripts against their live versions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "YAML catalog file (default: built-in sepsis catalog)")
	root.PersistentFlags().StringVar(&opts.backend, "summarizer", "", "Summarizer backend: genai, huggingface or none (default from SUMMARIZER_BACKEND)")
	root.PersistentFlags().BoolVar(&opts.hints, "hints", false, "Show intraline change markers")
	root.PersistentFlags().BoolVar(&opts.verify, "verify", false, "Check that the diff rebuilds the live script")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print reports as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newScriptsCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newCompareCmd(opts))

	return root
}

// setup loads .env and the environment, then applies the flag overrides
func setup(ctx context.Context, cmd *cobra.Command, opts *options) (*report.Service, error) {
	_ = godotenv.Load(".env")
	cfg := config.FromEnv()

	if opts.catalogFile != "" {
		cfg.Catalog.File = opts.catalogFile
	}
	if opts.backend != "" {
		cfg.Summarizer.Backend = opts.backend
	}
	if opts.hints {
		cfg.Diff.Hints = true
	}
	if err := cfg.Summarizer.Validate(); err != nil {
		return nil, err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), level, "text")

	p, err := app.NewPipeline(ctx, cfg, true, log)
	if err != nil {
		return nil, err
	}

	return report.NewService(p.Catalog, p.Source, p.Builder, nil, log), nil
}
