package document

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// GitHubScheme prefixes locators served by GitHubSource
const GitHubScheme = "github://"

// GitHubSource fetches files from GitHub repositories through the contents API.
// Locators look like github://owner/repo/path/to/file.sql@ref, the ref is optional.
type GitHubSource struct {
	gh *gh.Client
}

// NewGitHubSource creates a GitHub source. An empty token uses anonymous access.
func NewGitHubSource(token string, timeout time.Duration) *GitHubSource {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = timeout

	return &GitHubSource{gh: gh.NewClient(hc)}
}

// GitHubLocator is a parsed github:// locator
type GitHubLocator struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// ParseGitHubLocator parses a github:// locator
func ParseGitHubLocator(locator string) (GitHubLocator, error) {
	rest, ok := strings.CutPrefix(locator, GitHubScheme)
	if !ok {
		return GitHubLocator{}, fmt.Errorf("not a github locator: %s", locator)
	}

	var loc GitHubLocator
	if idx := strings.LastIndex(rest, "@"); idx != -1 {
		loc.Ref = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return GitHubLocator{}, fmt.Errorf("github locator must be github://owner/repo/path[@ref]: %s", locator)
	}
	loc.Owner, loc.Repo, loc.Path = parts[0], parts[1], parts[2]

	return loc, nil
}

// Fetch downloads the file named by the locator
func (s *GitHubSource) Fetch(ctx context.Context, locator string) (*TextDocument, error) {
	loc, err := ParseGitHubLocator(locator)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}

	var opts *gh.RepositoryContentGetOptions
	if loc.Ref != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: loc.Ref}
	}

	rc, resp, err := s.gh.Repositories.DownloadContents(ctx, loc.Owner, loc.Repo, loc.Path, opts)
	if err != nil {
		fetchErr := &FetchError{Locator: locator, Err: err}
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			fetchErr.StatusCode = errResp.Response.StatusCode
		} else if resp != nil && resp.Response != nil && resp.StatusCode != http.StatusOK {
			fetchErr.StatusCode = resp.StatusCode
		}
		return nil, fetchErr
	}
	defer rc.Close()

	body, err := readBody(rc)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: fmt.Errorf("failed to read content: %w", err)}
	}

	return New(locator, string(body)), nil
}
