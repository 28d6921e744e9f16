package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nahidhasan98/script-drift/internal/classify"
	"github.com/nahidhasan98/script-drift/internal/diff"
	"github.com/nahidhasan98/script-drift/internal/document"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/summary"
)

const (
	// PreviewChars is how much of each document a preview shows
	PreviewChars = 300
	// PreviewLines is how many diff lines a preview shows
	PreviewLines = 10
)

// ChangeReport is the result of one comparison. It holds plain data only and
// is never modified after Build returns.
type ChangeReport struct {
	ID             string                 `json:"id"`
	Script         string                 `json:"script,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Baseline       *document.TextDocument `json:"baseline"`
	Current        *document.TextDocument `json:"current"`
	Diff           []diff.Line            `json:"diff"`
	Classification classify.Change        `json:"classification"`
	Counts         classify.Counts        `json:"counts"`
	Explanation    string                 `json:"explanation"`
	Summary        summary.Summary        `json:"summary"`
}

// Previews are the truncated views shown next to a report
type Previews struct {
	Baseline string `json:"baseline"`
	Current  string `json:"current"`
	Diff     string `json:"diff"`
}

// Previews returns the short views of both documents and the diff
func (r *ChangeReport) Previews() Previews {
	return Previews{
		Baseline: r.Baseline.Preview(PreviewChars),
		Current:  r.Current.Preview(PreviewChars),
		Diff:     diff.Preview(r.Diff, PreviewLines),
	}
}

// HasChanges reports whether any line was added or removed
func (r *ChangeReport) HasChanges() bool {
	return !r.Classification.IsEmpty()
}

// Summarizer produces the natural-language summary of a diff
type Summarizer interface {
	Summarize(ctx context.Context, lines []diff.Line) summary.Summary
}

// Builder runs the diff, classify and summarize stages
type Builder struct {
	summarizer Summarizer
	diffOpts   []diff.Option
	log        *logger.Logger
	now        func() time.Time
}

// NewBuilder creates a builder around an already constructed summarizer
func NewBuilder(s Summarizer, log *logger.Logger, opts ...diff.Option) *Builder {
	return &Builder{
		summarizer: s,
		diffOpts:   opts,
		log:        log,
		now:        time.Now,
	}
}

// Build compares two fetched documents. Classification and summarization run
// concurrently on the same diff; a failed summary never affects the rest of
// the report.
func (b *Builder) Build(ctx context.Context, baseline, current *document.TextDocument) *ChangeReport {
	return b.BuildScript(ctx, "", baseline, current)
}

// BuildScript is Build for a named catalog script
func (b *Builder) BuildScript(ctx context.Context, script string, baseline, current *document.TextDocument) *ChangeReport {
	lines := diff.Lines(baseline, current, b.diffOpts...)
	b.log.Debugf("Diff computed: %d baseline lines, %d current lines, %d diff lines",
		baseline.Len(), current.Len(), len(lines))

	var (
		change classify.Change
		counts classify.Counts
		sum    summary.Summary
	)

	var g errgroup.Group
	g.Go(func() error {
		change = classify.Classify(lines)
		counts = classify.Count(lines)
		return nil
	})
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				sum = summary.Failed(fmt.Sprintf("Error generating summary: %v", r))
			}
		}()
		sum = b.summarizer.Summarize(ctx, lines)
		return nil
	})
	_ = g.Wait()

	return &ChangeReport{
		ID:             uuid.NewString(),
		Script:         script,
		CreatedAt:      b.now().UTC(),
		Baseline:       baseline,
		Current:        current,
		Diff:           lines,
		Classification: change,
		Counts:         counts,
		Explanation:    classify.Explain(change),
		Summary:        sum,
	}
}
