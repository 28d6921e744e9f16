package app

import (
	"context"
	"fmt"

	"github.com/nahidhasan98/script-drift/internal/catalog"
	"github.com/nahidhasan98/script-drift/internal/config"
	"github.com/nahidhasan98/script-drift/internal/diff"
	"github.com/nahidhasan98/script-drift/internal/document"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/report"
	"github.com/nahidhasan98/script-drift/internal/summary"
)

// Pipeline is everything needed to produce change reports
type Pipeline struct {
	Catalog    *catalog.Catalog
	Source     document.Source
	Builder    *report.Builder
	Summarizer string
}

// NewSource routes locators to the HTTP, GitHub and local file sources.
// Local files are left out when allowFiles is false.
func NewSource(cfg config.FetchConfig, allowFiles bool) *document.Router {
	r := &document.Router{
		HTTP:     document.NewHTTPSource(cfg.Timeout, cfg.UserAgent),
		GitHub:   document.NewGitHubSource(cfg.GitHubToken, cfg.Timeout),
		MaxLines: cfg.MaxLines,
	}
	if allowFiles {
		r.File = document.FileSource{}
	}
	return r
}

// NewTextFunc creates the configured summarization backend
func NewTextFunc(ctx context.Context, cfg config.SummarizerConfig) (summary.TextFunc, error) {
	switch cfg.Backend {
	case config.BackendGenAI:
		return summary.NewGenAI(ctx, cfg.APIKey, cfg.Model)
	case config.BackendHuggingFace:
		return summary.NewHuggingFace(cfg.Endpoint, cfg.APIKey, cfg.Timeout), nil
	case config.BackendNone, "":
		return summary.Disabled(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend: %q", cfg.Backend)
	}
}

// LoadCatalog reads the catalog file, or returns the built-in catalog
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.File == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.File)
}

// NewPipeline builds the catalog, source, summarizer and report builder
func NewPipeline(ctx context.Context, cfg *config.Config, allowFiles bool, log *logger.Logger) (*Pipeline, error) {
	cat, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	fn, err := NewTextFunc(ctx, cfg.Summarizer)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	var opts []diff.Option
	if cfg.Diff.Hints {
		opts = append(opts, diff.WithHints(), diff.WithHintCutoff(cfg.Diff.HintCutoff))
	}

	backend := cfg.Summarizer.Backend
	if backend == "" {
		backend = config.BackendNone
	}

	sum := summary.New(fn, cfg.Summarizer.Timeout, log.With("component", "summarizer"))
	return &Pipeline{
		Catalog:    cat,
		Source:     NewSource(cfg.Fetch, allowFiles),
		Builder:    report.NewBuilder(sum, log, opts...),
		Summarizer: backend,
	}, nil
}
