package document

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPSource fetches documents with a plain GET request
type HTTPSource struct {
	client    *http.Client
	userAgent string
}

// NewHTTPSource creates an HTTP source with the given request timeout
func NewHTTPSource(timeout time.Duration, userAgent string) *HTTPSource {
	return &HTTPSource{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves the locator. Only a 200 response counts as success.
func (s *HTTPSource) Fetch(ctx context.Context, locator string) (*TextDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Locator:    locator,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return New(locator, string(body)), nil
}
