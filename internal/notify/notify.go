package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/report"
)

// MaxMessageLength is the longest message the notifier sends
const MaxMessageLength = 4096

const truncatedNote = "\n\n_...explanation truncated_"

// Header fields are clipped so the explanation always keeps most of the message.
const (
	maxNameLength    = 256
	maxSummaryLength = 1024
)

// Sender delivers a text message to a recipient
type Sender interface {
	SendText(ctx context.Context, to string, text string) error
}

// Notifier sends change reports to a fixed recipient
type Notifier struct {
	sender    Sender
	recipient string
	log       *logger.Logger
}

// New creates a notifier
func New(sender Sender, recipient string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, recipient: recipient, log: log}
}

// Notify formats the report and sends it
func (n *Notifier) Notify(ctx context.Context, r *report.ChangeReport) error {
	if n.recipient == "" {
		return fmt.Errorf("no notification recipient configured")
	}

	if err := n.sender.SendText(ctx, n.recipient, Format(r)); err != nil {
		return fmt.Errorf("failed to send report %s: %w", r.ID, err)
	}

	n.log.Infof("Change report %s sent to %s", r.ID, n.recipient)
	return nil
}

// Format renders a report as a chat message: title, summary, counts and the
// plain-language explanation
func Format(r *report.ChangeReport) string {
	var sb strings.Builder

	name := r.Script
	if name == "" {
		name = r.Current.Label
	}
	sb.WriteString(fmt.Sprintf("🔔 *Script drift: %s*\n\n", clip(name, maxNameLength)))

	sb.WriteString("*AI Summary:*\n")
	if r.Summary.IsFailed() {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", clip(r.Summary.Reason(), maxSummaryLength)))
	} else {
		sb.WriteString(clip(r.Summary.Text(), maxSummaryLength) + "\n")
	}

	sb.WriteString("\n```")
	sb.WriteString(fmt.Sprintf("✅ Added  : %d\n", r.Counts.Added))
	sb.WriteString(fmt.Sprintf("❌ Removed: %d\n", r.Counts.Removed))
	sb.WriteString("```\n\n")

	sb.WriteString("*Explanation:*\n")
	head := sb.String()

	explanation := r.Explanation
	if len(head)+len(explanation) > MaxMessageLength {
		room := MaxMessageLength - len(head) - len(truncatedNote)
		explanation = cutAtRune(explanation, room) + truncatedNote
	}

	return head + explanation
}

// clip shortens s to at most n bytes, marking the cut with an ellipsis
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return cutAtRune(s, n-len("…")) + "…"
}

// cutAtRune cuts s to at most n bytes without splitting a character
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
