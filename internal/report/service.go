package report

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nahidhasan98/script-drift/internal/catalog"
	"github.com/nahidhasan98/script-drift/internal/document"
	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/logger"
)

// ErrNotifierDisabled is recorded when a notification was requested but no
// delivery channel is configured
var ErrNotifierDisabled = stderrors.New("notifications are not configured")

// Notifier delivers a finished report
type Notifier interface {
	Notify(ctx context.Context, r *ChangeReport) error
}

// Result is a built report plus the outcome of its notification
type Result struct {
	Report      *ChangeReport
	Notified    bool
	NotifyError error
}

// Service runs comparisons for catalog scripts or ad hoc locator pairs
type Service struct {
	catalog  *catalog.Catalog
	source   document.Source
	builder  *Builder
	notifier Notifier
	log      *logger.Logger
}

// NewService wires the pipeline. notifier may be nil.
func NewService(cat *catalog.Catalog, source document.Source, builder *Builder, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		catalog:  cat,
		source:   source,
		builder:  builder,
		notifier: notifier,
		log:      log,
	}
}

// Catalog returns the script catalog
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Compare checks a catalog script. The report is sent when notify is set or
// the script asks for it.
func (s *Service) Compare(ctx context.Context, name string, notify bool) (*Result, error) {
	script, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, errors.ScriptNotFound(name)
	}

	return s.run(ctx, script.Baseline, script.Live, name, notify || script.Notify)
}

// CompareLocators checks an arbitrary baseline and live locator
func (s *Service) CompareLocators(ctx context.Context, baseline, live string, notify bool) (*Result, error) {
	return s.run(ctx, baseline, live, "", notify)
}

// maxWatchedChecks bounds how many watched scripts are compared at once
const maxWatchedChecks = 4

// CompareWatching re-checks every script watching path in repo and always
// notifies. Scripts are compared concurrently; results keep catalog match
// order. Fetch failures are logged and skipped.
func (s *Service) CompareWatching(ctx context.Context, repo string, paths []string) []*Result {
	seen := make(map[string]bool)
	var scripts []catalog.Script

	for _, path := range paths {
		for _, script := range s.catalog.Watching(repo, path) {
			if seen[script.Name] {
				continue
			}
			seen[script.Name] = true
			scripts = append(scripts, script)
		}
	}

	slots := make([]*Result, len(scripts))
	var g errgroup.Group
	g.SetLimit(maxWatchedChecks)

	for i, script := range scripts {
		g.Go(func() error {
			res, err := s.run(ctx, script.Baseline, script.Live, script.Name, true)
			if err != nil {
				s.log.With("script", script.Name).Error("Watched script check failed", err)
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	_ = g.Wait()

	results := make([]*Result, 0, len(slots))
	for _, res := range slots {
		if res != nil {
			results = append(results, res)
		}
	}
	return results
}

func (s *Service) run(ctx context.Context, baselineLoc, liveLoc, name string, notify bool) (*Result, error) {
	log := s.log.With("script", name)

	baseline, current, err := s.fetchPair(ctx, baselineLoc, liveLoc)
	if err != nil {
		log.Error("Failed to load scripts for comparison", err)
		return nil, errors.FetchFailed(err)
	}

	r := s.builder.BuildScript(ctx, name, baseline, current)

	if r.Summary.IsFailed() {
		log.Warnf("Report %s built without summary: %s", r.ID, r.Summary.Reason())
	}
	log.Infof("Report %s built: %d added, %d removed", r.ID, r.Counts.Added, r.Counts.Removed)

	res := &Result{Report: r}
	if notify {
		s.notify(ctx, res)
	}
	return res, nil
}

func (s *Service) notify(ctx context.Context, res *Result) {
	if s.notifier == nil {
		res.NotifyError = ErrNotifierDisabled
		s.log.Warn("Notification requested but no notifier is configured")
		return
	}

	if err := s.notifier.Notify(ctx, res.Report); err != nil {
		res.NotifyError = errors.NotifyFailed(err)
		s.log.Error("Failed to send change notification", err)
		return
	}
	res.Notified = true
}

// fetchPair retrieves both documents concurrently. Either failure fails the pair.
func (s *Service) fetchPair(ctx context.Context, baselineLoc, liveLoc string) (*document.TextDocument, *document.TextDocument, error) {
	var baseline, current *document.TextDocument

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := s.source.Fetch(gctx, baselineLoc)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		baseline = doc
		return nil
	})
	g.Go(func() error {
		doc, err := s.source.Fetch(gctx, liveLoc)
		if err != nil {
			return fmt.Errorf("live: %w", err)
		}
		current = doc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return baseline, current, nil
}
