package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nahidhasan98/script-drift/internal/diff"
	"github.com/nahidhasan98/script-drift/internal/logger"
)

const (
	// MaxInputChars caps the diff text handed to the summarization function
	MaxInputChars = 512

	// MinLength and MaxLength bound the generated summary, in the backend's own units
	MinLength = 30
	MaxLength = 150
)

// ErrEmptyOutput is returned when the backend produced only whitespace
var ErrEmptyOutput = errors.New("summarizer returned no text")

// TextFunc is the external summarization function. Implementations must decode
// greedily so identical input yields identical output.
type TextFunc interface {
	SummarizeText(ctx context.Context, text string, minLen, maxLen int) (string, error)
}

// Func adapts a plain function to TextFunc
type Func func(ctx context.Context, text string, minLen, maxLen int) (string, error)

// SummarizeText calls f
func (f Func) SummarizeText(ctx context.Context, text string, minLen, maxLen int) (string, error) {
	return f(ctx, text, minLen, maxLen)
}

// Summarizer turns a diff into a short natural-language synopsis
type Summarizer struct {
	fn      TextFunc
	timeout time.Duration
	log     *logger.Logger
}

// New creates a summarizer. A zero timeout leaves the call unbounded apart
// from the caller's context.
func New(fn TextFunc, timeout time.Duration, log *logger.Logger) *Summarizer {
	return &Summarizer{fn: fn, timeout: timeout, log: log}
}

// Summarize makes exactly one call to the summarization function. Every
// failure, including a panic or a timeout, comes back as a failed Summary.
func (s *Summarizer) Summarize(ctx context.Context, lines []diff.Line) Summary {
	input := Truncate(diff.Text(lines), MaxInputChars)

	text, err := s.call(ctx, input)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyOutput
	}
	if err != nil {
		s.log.Warnf("Summary generation failed: %v", err)
		return Failed(fmt.Sprintf("Error generating summary: %v", err))
	}

	s.log.Debugf("Summary generated from %d input characters", len([]rune(input)))
	return OK(strings.TrimSpace(text))
}

type result struct {
	text string
	err  error
}

func (s *Summarizer) call(ctx context.Context, input string) (string, error) {
	if s.fn == nil {
		return "", errors.New("no summarization backend configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("summarizer panicked: %v", r)}
			}
		}()
		text, err := s.fn.SummarizeText(ctx, input, MinLength, MaxLength)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("summarizer did not respond: %w", ctx.Err())
	}
}

// Truncate cuts text to at most n characters
func Truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
