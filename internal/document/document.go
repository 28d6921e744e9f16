package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxBodySize is the largest document a remote source will accept
const MaxBodySize = 8 << 20

// ErrTooLarge is wrapped by fetch errors for documents over a size limit
var ErrTooLarge = errors.New("document too large")

// TextDocument is an ordered, immutable sequence of lines fetched from a source
type TextDocument struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}

// Source resolves a locator to a text document
type Source interface {
	Fetch(ctx context.Context, locator string) (*TextDocument, error)
}

// New splits text into a document. Lines are split on "\n" only, so carriage
// returns and trailing whitespace stay part of the line content. A single
// trailing newline does not produce an extra empty line.
func New(label, text string) *TextDocument {
	return &TextDocument{Label: label, Lines: SplitLines(text)}
}

// FromLines builds a document from already split lines
func FromLines(label string, lines []string) *TextDocument {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &TextDocument{Label: label, Lines: cp}
}

// SplitLines splits text on newlines without any normalization
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Text joins the lines back with newlines
func (d *TextDocument) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Lines, "\n")
}

// Len returns the number of lines
func (d *TextDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// Preview returns the first n characters of the text followed by "..."
func (d *TextDocument) Preview(n int) string {
	runes := []rune(d.Text())
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// FetchError reports that a document could not be retrieved
type FetchError struct {
	Locator    string
	StatusCode int // zero when the failure happened below HTTP
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error fetching %s: status %d", e.Locator, e.StatusCode)
	}
	return fmt.Sprintf("error fetching %s: %v", e.Locator, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// readBody reads r fully, failing rather than truncating past MaxBodySize
func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxBodySize)
	}
	return body, nil
}
