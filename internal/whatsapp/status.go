package whatsapp

import "time"

// Status is a snapshot of the linked device
type Status struct {
	Connected    bool   `json:"connected"`
	Reconnecting bool   `json:"reconnecting"`
	Device       string `json:"device,omitempty"`
}

// Backoff controls reconnection pacing
type Backoff struct {
	MaxRetries int
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

// DefaultBackoff retries for roughly half an hour before giving up
var DefaultBackoff = Backoff{
	MaxRetries: 10,
	Initial:    5 * time.Second,
	Max:        5 * time.Minute,
	Multiplier: 1.5,
}

// Delay returns the wait before the given attempt, starting at 1
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Initial
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * b.Multiplier)
		if d >= b.Max {
			return b.Max
		}
	}
	return d
}
