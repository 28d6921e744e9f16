package classify

import (
	"strings"

	"github.com/nahidhasan98/script-drift/internal/diff"
)

// NoChanges is the explanation used when nothing was added or removed
const NoChanges = "No significant changes."

const (
	addedHeader   = "New lines added:"
	removedHeader = "Lines removed:"
)

// Change holds the added and removed lines of a diff in their original order
type Change struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Counts tallies a diff by tag
type Counts struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Hints     int `json:"hints"`
}

// Total returns the number of diff lines counted
func (c Counts) Total() int {
	return c.Added + c.Removed + c.Unchanged + c.Hints
}

// Classify partitions a diff into added and removed lines. Unchanged and hint
// lines are dropped.
func Classify(lines []diff.Line) Change {
	change := Change{Added: []string{}, Removed: []string{}}
	for _, l := range lines {
		switch l.Tag {
		case diff.Added:
			change.Added = append(change.Added, l.Content)
		case diff.Removed:
			change.Removed = append(change.Removed, l.Content)
		}
	}
	return change
}

// Count tallies every line of a diff
func Count(lines []diff.Line) Counts {
	var c Counts
	for _, l := range lines {
		switch l.Tag {
		case diff.Added:
			c.Added++
		case diff.Removed:
			c.Removed++
		case diff.Hint:
			c.Hints++
		default:
			c.Unchanged++
		}
	}
	return c
}

// IsEmpty reports whether nothing was added or removed
func (c Change) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Explain renders the change in plain language: the added section, then the
// removed section, separated by a blank line.
func Explain(c Change) string {
	if c.IsEmpty() {
		return NoChanges
	}

	sections := make([]string, 0, 2)
	if len(c.Added) > 0 {
		sections = append(sections, addedHeader+"\n"+strings.Join(c.Added, "\n"))
	}
	if len(c.Removed) > 0 {
		sections = append(sections, removedHeader+"\n"+strings.Join(c.Removed, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
