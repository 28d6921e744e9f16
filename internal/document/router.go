package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLocator is returned when no source handles the locator scheme
var ErrUnsupportedLocator = errors.New("unsupported locator scheme")

// Router dispatches a locator to a source by its scheme
type Router struct {
	HTTP   Source
	GitHub Source
	File   Source

	// MaxLines rejects longer documents when positive
	MaxLines int
}

// Fetch picks the source for the locator and delegates to it
func (r *Router) Fetch(ctx context.Context, locator string) (*TextDocument, error) {
	src := r.route(locator)
	if src == nil {
		return nil, &FetchError{Locator: locator, Err: ErrUnsupportedLocator}
	}

	doc, err := src.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	if r.MaxLines > 0 && doc.Len() > r.MaxLines {
		return nil, &FetchError{
			Locator: locator,
			Err:     fmt.Errorf("%w: %d lines, limit is %d", ErrTooLarge, doc.Len(), r.MaxLines),
		}
	}
	return doc, nil
}

func (r *Router) route(locator string) Source {
	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return r.HTTP
	case strings.HasPrefix(locator, GitHubScheme):
		return r.GitHub
	case strings.HasPrefix(locator, FileScheme):
		return r.File
	case strings.Contains(locator, "://"):
		return nil
	default:
		// bare paths are local files
		return r.File
	}
}
