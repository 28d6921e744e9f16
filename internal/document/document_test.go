package document

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"single line no newline", "SELECT 1;", []string{"SELECT 1;"}},
		{"trailing newline dropped", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"carriage return kept", "a\r\nb\r\n", []string{"a\r", "b\r"}},
		{"trailing whitespace kept", "a  \nb", []string{"a  ", "b"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

func TestTextDocument_Preview(t *testing.T) {
	doc := New("x", "SELECT * FROM person;")
	assert.Equal(t, "SELECT...", doc.Preview(6))
	assert.Equal(t, "SELECT * FROM person;...", doc.Preview(300))
}

func TestFromLines_Copies(t *testing.T) {
	lines := []string{"a", "b"}
	doc := FromLines("x", lines)
	lines[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, doc.Lines)
	assert.Equal(t, "a\nb", doc.Text())
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/huge.sql":
			_, _ = w.Write([]byte(strings.Repeat("SELECT 1;\n", MaxBodySize/10)))
			_, _ = w.Write([]byte("LAST LINE;\n"))
		case "/ok.sql":
			assert.Equal(t, "script-drift-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("SELECT 1;\nFROM foo;\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(5*time.Second, "script-drift-test")

	t.Run("success", func(t *testing.T) {
		doc, err := src.Fetch(context.Background(), srv.URL+"/ok.sql")
		require.NoError(t, err)
		assert.Equal(t, []string{"SELECT 1;", "FROM foo;"}, doc.Lines)
		assert.Equal(t, srv.URL+"/ok.sql", doc.Label)
	})

	t.Run("non-200 is a fetch error", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), srv.URL+"/missing.sql")
		require.Error(t, err)

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("oversized body is an error, not a truncated document", func(t *testing.T) {
		doc, err := src.Fetch(context.Background(), srv.URL+"/huge.sql")
		assert.Nil(t, doc)

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("transport failure is a fetch error", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "http://127.0.0.1:1/none")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Zero(t, fetchErr.StatusCode)
	})
}

func TestFileSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sql")
	require.NoError(t, os.WriteFile(path, []byte("X;\n"), 0o600))

	doc, err := FileSource{}.Fetch(context.Background(), FileScheme+path)
	require.NoError(t, err)
	assert.Equal(t, []string{"X;"}, doc.Lines)

	_, err = FileSource{}.Fetch(context.Background(), filepath.Join(dir, "nope.sql"))
	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestParseGitHubLocator(t *testing.T) {
	loc, err := ParseGitHubLocator("github://LhallTDI/RediscoverICU/Baseline Scripts/B_SEPSIS_Cohort.sql@main")
	require.NoError(t, err)
	assert.Equal(t, GitHubLocator{
		Owner: "LhallTDI",
		Repo:  "RediscoverICU",
		Path:  "Baseline Scripts/B_SEPSIS_Cohort.sql",
		Ref:   "main",
	}, loc)

	loc, err = ParseGitHubLocator("github://o/r/file.sql")
	require.NoError(t, err)
	assert.Empty(t, loc.Ref)

	for _, bad := range []string{"https://x/y/z", "github://o/r", "github:///r/p"} {
		_, err := ParseGitHubLocator(bad)
		assert.Error(t, err, bad)
	}
}

type stubSource struct {
	name string
}

func (s stubSource) Fetch(_ context.Context, locator string) (*TextDocument, error) {
	return New(s.name, locator), nil
}

func TestRouter_Fetch(t *testing.T) {
	r := &Router{
		HTTP:   stubSource{name: "http"},
		GitHub: stubSource{name: "github"},
		File:   stubSource{name: "file"},
	}

	tests := map[string]string{
		"https://example.com/a.sql": "http",
		"http://example.com/a.sql":  "http",
		"github://o/r/a.sql":        "github",
		"file:///tmp/a.sql":         "file",
		"./a.sql":                   "file",
	}
	for locator, want := range tests {
		doc, err := r.Fetch(context.Background(), locator)
		require.NoError(t, err, locator)
		assert.Equal(t, want, doc.Label, locator)
	}

	_, err := r.Fetch(context.Background(), "ftp://example.com/a.sql")
	assert.ErrorIs(t, err, ErrUnsupportedLocator)

	_, err = (&Router{}).Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrUnsupportedLocator)
}

func TestRouter_MaxLines(t *testing.T) {
	r := &Router{HTTP: stubSource{name: "http"}, MaxLines: 2}

	doc, err := r.Fetch(context.Background(), "https://example.com/a\nb")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	_, err = r.Fetch(context.Background(), "https://example.com/a\nb\nc")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "3 lines, limit is 2")
}
