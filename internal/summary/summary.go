package summary

import (
	"encoding/json"
	"fmt"
)

// Status tells whether a summary was produced
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Summary is either a generated text or the reason generation failed, never both
type Summary struct {
	status Status
	text   string
	reason string
}

// OK wraps a generated summary
func OK(text string) Summary {
	return Summary{status: StatusOK, text: text}
}

// Failed records why no summary could be produced
func Failed(reason string) Summary {
	return Summary{status: StatusFailed, reason: reason}
}

// Status returns ok or failed
func (s Summary) Status() Status {
	if s.status == "" {
		return StatusFailed
	}
	return s.status
}

// IsFailed reports whether the summary is a failure marker
func (s Summary) IsFailed() bool {
	return s.Status() == StatusFailed
}

// Text returns the summary text, empty on failure
func (s Summary) Text() string {
	return s.text
}

// Reason returns the failure description, empty on success
func (s Summary) Reason() string {
	if s.status == "" {
		return "no summary"
	}
	return s.reason
}

// String returns what a reader should see: the text, or the failure reason
func (s Summary) String() string {
	if s.IsFailed() {
		return s.Reason()
	}
	return s.text
}

type summaryJSON struct {
	Status Status `json:"status"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// MarshalJSON encodes the summary as {"status":..., "text"|"reason":...}
func (s Summary) MarshalJSON() ([]byte, error) {
	if s.IsFailed() {
		return json.Marshal(summaryJSON{Status: StatusFailed, Reason: s.Reason()})
	}
	return json.Marshal(summaryJSON{Status: StatusOK, Text: s.text})
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw summaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Status {
	case StatusOK:
		*s = OK(raw.Text)
	case StatusFailed:
		*s = Failed(raw.Reason)
	default:
		return fmt.Errorf("unknown summary status %q", raw.Status)
	}
	return nil
}
