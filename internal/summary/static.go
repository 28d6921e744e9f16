package summary

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the backend used when summarization is turned off
var ErrDisabled = errors.New("summarizer disabled")

// Static returns a fixed text or a fixed error
type Static struct {
	Text string
	Err  error
}

// SummarizeText returns the configured result
func (s Static) SummarizeText(ctx context.Context, _ string, _, _ int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Text, s.Err
}

// Disabled is the backend for SUMMARIZER_BACKEND=none
func Disabled() Static {
	return Static{Err: ErrDisabled}
}
