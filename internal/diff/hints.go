package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultHintCutoff is the minimum similarity ratio for a removed and an added
// line to be treated as one modified line
const DefaultHintCutoff = 0.75

type options struct {
	hints  bool
	cutoff float64
}

// Option configures Compute
type Option func(*options)

// WithHints emits Hint lines marking intra-line changes for similar pairs
func WithHints() Option {
	return func(o *options) { o.hints = true }
}

// WithHintCutoff sets the similarity ratio used for pairing. Implies WithHints.
func WithHintCutoff(cutoff float64) Option {
	return func(o *options) {
		o.hints = true
		o.cutoff = cutoff
	}
}

func newOptions(opts []Option) options {
	o := options{cutoff: DefaultHintCutoff}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// appendGap writes one run of removed and added lines between two common lines
func (o options) appendGap(out []Line, removed, added []string) []Line {
	var pairs map[int]int
	if o.hints && len(removed) > 0 && len(added) > 0 {
		pairs = pairLines(removed, added, o.cutoff)
	}

	if len(pairs) == 0 {
		for _, r := range removed {
			out = append(out, Line{Tag: Removed, Content: r})
		}
		for _, a := range added {
			out = append(out, Line{Tag: Added, Content: a})
		}
		return out
	}

	addedMarks := make(map[int]string, len(pairs))
	for k, r := range removed {
		out = append(out, Line{Tag: Removed, Content: r})
		p, ok := pairs[k]
		if !ok {
			continue
		}
		rm, am := changeMarks(r, added[p])
		if rm != "" {
			out = append(out, Line{Tag: Hint, Content: rm})
		}
		addedMarks[p] = am
	}
	for p, a := range added {
		out = append(out, Line{Tag: Added, Content: a})
		if am := addedMarks[p]; am != "" {
			out = append(out, Line{Tag: Hint, Content: am})
		}
	}

	return out
}

// pairLines maps removed indexes to added indexes. Each removed line takes the
// most similar unused added line after the previous pair, earliest on ties, so
// pairs never cross.
func pairLines(removed, added []string, cutoff float64) map[int]int {
	pairs := make(map[int]int)
	next := 0

	for k, r := range removed {
		best, bestRatio := -1, 0.0
		for p := next; p < len(added); p++ {
			m := difflib.NewMatcher(chars(r), chars(added[p]))
			if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
				continue
			}
			ratio := m.Ratio()
			if ratio >= cutoff && (best == -1 || ratio > bestRatio) {
				best, bestRatio = p, ratio
			}
		}
		if best != -1 {
			pairs[k] = best
			next = best + 1
		}
	}

	return pairs
}

// changeMarks returns marker strings for both sides: '^' under replaced
// characters, '-' under deleted ones and '+' under inserted ones
func changeMarks(a, b string) (string, string) {
	ac, bc := chars(a), chars(b)
	m := difflib.NewMatcher(ac, bc)

	var am, bm strings.Builder
	for _, op := range m.GetOpCodes() {
		la, lb := op.I2-op.I1, op.J2-op.J1
		switch op.Tag {
		case 'r':
			am.WriteString(strings.Repeat("^", la))
			bm.WriteString(strings.Repeat("^", lb))
		case 'd':
			am.WriteString(strings.Repeat("-", la))
		case 'i':
			bm.WriteString(strings.Repeat("+", lb))
		case 'e':
			am.WriteString(strings.Repeat(" ", la))
			bm.WriteString(strings.Repeat(" ", lb))
		}
	}

	return strings.TrimRight(am.String(), " "), strings.TrimRight(bm.String(), " ")
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
