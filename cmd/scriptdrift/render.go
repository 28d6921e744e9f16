package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nahidhasan98/script-drift/internal/diff"
	"github.com/nahidhasan98/script-drift/internal/models"
	"github.com/nahidhasan98/script-drift/internal/report"
)

type styles struct {
	title   lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	hint    lipgloss.Style
	context lipgloss.Style
	label   lipgloss.Style
	warn    lipgloss.Style
}

// newStyles binds the palette to w so colors drop out when w is not a terminal
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		added:   r.NewStyle().Foreground(lipgloss.Color("#2EA043")),
		removed: r.NewStyle().Foreground(lipgloss.Color("#F85149")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("#D29922")),
		context: r.NewStyle().Foreground(lipgloss.Color("#8B949E")),
		label:   r.NewStyle().Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#D29922")).Bold(true),
	}
}

func (s styles) line(l diff.Line) string {
	text := l.String()
	switch l.Tag {
	case diff.Added:
		return s.added.Render(text)
	case diff.Removed:
		return s.removed.Render(text)
	case diff.Hint:
		return s.hint.Render(text)
	default:
		return s.context.Render(text)
	}
}

// renderReport writes a report for a terminal
func renderReport(w io.Writer, r *report.ChangeReport) {
	s := newStyles(w)

	title := r.Script
	if title == "" {
		title = r.Baseline.Label + " → " + r.Current.Label
	}
	fmt.Fprintln(w, s.title.Render("== "+title+" =="))

	if r.Summary.IsFailed() {
		fmt.Fprintln(w, s.warn.Render("⚠ "+r.Summary.Reason()))
	} else {
		fmt.Fprintln(w, s.label.Render("Summary: ")+r.Summary.Text())
	}

	fmt.Fprintf(w, "%s %s  %s %s\n",
		s.label.Render("Added:"), s.added.Render(fmt.Sprint(r.Counts.Added)),
		s.label.Render("Removed:"), s.removed.Render(fmt.Sprint(r.Counts.Removed)))

	if r.HasChanges() {
		fmt.Fprintln(w)
		for _, l := range r.Diff {
			fmt.Fprintln(w, s.line(l))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Explanation)
	fmt.Fprintln(w)
}

func renderJSON(w io.Writer, results []*report.Result) error {
	out := make([]*models.CompareResponse, 0, len(results))
	for _, res := range results {
		out = append(out, models.NewCompareResponse(res))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// verify replays the diff over the baseline and checks it yields the live lines
func verify(r *report.ChangeReport) error {
	got, err := diff.Apply(r.Baseline.Lines, r.Diff)
	if err != nil {
		return fmt.Errorf("diff does not apply to %s: %w", r.Baseline.Label, err)
	}
	if !slices.Equal(got, r.Current.Lines) {
		return fmt.Errorf("diff does not rebuild %s (%d lines, want %d)", r.Current.Label, len(got), len(r.Current.Lines))
	}
	return nil
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
