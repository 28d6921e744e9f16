// Package diff computes line-level edit scripts between two documents.
//
// The alignment is a longest common subsequence over whole lines. When more
// than one longest alignment exists, the walk skips the line with the
// lexicographically smaller content. The rule does not depend on which
// document is the baseline, so swapping the inputs swaps Added and Removed
// without changing which lines are considered common. Leading and trailing
// lines shared by both documents are matched before the table is built, so
// its size depends only on the changed region.
package diff

import (
	"fmt"
	"strings"

	"github.com/nahidhasan98/script-drift/internal/document"
)

// Tag identifies the kind of a diff line
type Tag int

const (
	Unchanged Tag = iota
	Removed
	Added
	Hint
)

var tagNames = [...]string{"unchanged", "removed", "added", "hint"}

// Prefix returns the two character marker used when rendering a line
func (t Tag) Prefix() string {
	switch t {
	case Removed:
		return "- "
	case Added:
		return "+ "
	case Hint:
		return "? "
	default:
		return "  "
	}
}

// String returns the tag name
func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("tag(%d)", int(t))
	}
	return tagNames[t]
}

// MarshalText encodes the tag as its name
func (t Tag) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(tagNames) {
		return nil, fmt.Errorf("unknown diff tag %d", int(t))
	}
	return []byte(tagNames[t]), nil
}

// UnmarshalText decodes a tag name
func (t *Tag) UnmarshalText(text []byte) error {
	for i, name := range tagNames {
		if name == string(text) {
			*t = Tag(i)
			return nil
		}
	}
	return fmt.Errorf("unknown diff tag %q", text)
}

// Line is one entry of an edit script
type Line struct {
	Tag     Tag    `json:"tag"`
	Content string `json:"content"`
}

// String renders the line with its tag prefix
func (l Line) String() string {
	return l.Tag.Prefix() + l.Content
}

// Lines diffs two documents
func Lines(baseline, current *document.TextDocument, opts ...Option) []Line {
	var a, b []string
	if baseline != nil {
		a = baseline.Lines
	}
	if current != nil {
		b = current.Lines
	}
	return Compute(a, b, opts...)
}

// Compute returns the edit script turning a into b. Between two common lines,
// all removed lines come before all added lines.
func Compute(a, b []string, opts ...Option) []Line {
	o := newOptions(opts)

	// Common leading and trailing lines never enter the table.
	pre := commonPrefix(a, b)
	suf := commonSuffix(a[pre:], b[pre:])
	mid := compute(a[pre:len(a)-suf], b[pre:len(b)-suf], o)

	out := make([]Line, 0, pre+len(mid)+suf)
	for _, s := range a[:pre] {
		out = append(out, Line{Tag: Unchanged, Content: s})
	}
	out = append(out, mid...)
	for _, s := range a[len(a)-suf:] {
		out = append(out, Line{Tag: Unchanged, Content: s})
	}
	return out
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

func compute(a, b []string, o options) []Line {
	n, m := len(a), len(b)
	w := m + 1

	// lcs[i*w+j] is the LCS length of a[i:] and b[j:]
	lcs := make([]int32, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i*w+j] = lcs[(i+1)*w+j+1] + 1
			} else {
				lcs[i*w+j] = max(lcs[(i+1)*w+j], lcs[i*w+j+1])
			}
		}
	}

	out := make([]Line, 0, max(n, m))
	var removed, added []string
	flush := func() {
		out = o.appendGap(out, removed, added)
		removed, added = removed[:0], added[:0]
	}

	i, j := 0, 0
	for i < n && j < m {
		if a[i] == b[j] {
			flush()
			out = append(out, Line{Tag: Unchanged, Content: a[i]})
			i++
			j++
			continue
		}

		skipA, skipB := lcs[(i+1)*w+j], lcs[i*w+j+1]
		if skipA > skipB || (skipA == skipB && a[i] < b[j]) {
			removed = append(removed, a[i])
			i++
		} else {
			added = append(added, b[j])
			j++
		}
	}
	removed = append(removed, a[i:]...)
	added = append(added, b[j:]...)
	flush()

	return out
}

// Render returns the prefixed form of every line
func Render(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Text joins the rendered lines with newlines
func Text(lines []Line) string {
	return strings.Join(Render(lines), "\n")
}

// Preview returns the first n rendered lines followed by "..."
func Preview(lines []Line, n int) string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return Text(lines) + "..."
}

// Apply replays the edit script on a, returning the reconstructed target.
// Hint lines are ignored.
func Apply(a []string, lines []Line) ([]string, error) {
	out := make([]string, 0, len(a))
	i := 0

	for pos, l := range lines {
		switch l.Tag {
		case Unchanged, Removed:
			if i >= len(a) {
				return nil, fmt.Errorf("line %d: %s past end of source", pos, l.Tag)
			}
			if a[i] != l.Content {
				return nil, fmt.Errorf("line %d: %s %q does not match source %q", pos, l.Tag, l.Content, a[i])
			}
			if l.Tag == Unchanged {
				out = append(out, l.Content)
			}
			i++
		case Added:
			out = append(out, l.Content)
		}
	}

	if i != len(a) {
		return nil, fmt.Errorf("edit script consumed %d of %d source lines", i, len(a))
	}
	return out, nil
}
