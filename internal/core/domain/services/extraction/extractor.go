package extraction

import (
	"strings"
	"time"
)

// minOrderLines is the smallest number of non-empty lines a message must
// carry to be considered order-like at all. Shorter messages are rejected
// before any field work happens.
const minOrderLines = 3

// Engine converts raw chat text into an order Draft. Extraction is pure and
// synchronous: a labeled-field pass first, a heuristic classification pass
// for whatever the labels left open, then a merge that always lets labeled
// results win.
//
// Extraction never fails with an error. Text that does not yield a complete
// draft simply reports ok=false; the caller decides whether that warrants a
// user-visible rejection.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an extraction engine. The now function resolves relative
// dates such as "tomorrow"; passing nil uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Extract recovers an order draft from message text.
//
// The text is split into trimmed, non-empty lines. Messages with fewer than
// three lines are not order-like and yield ok=false immediately. Otherwise
// the labeled pass claims explicitly marked lines, the classifier fills the
// remaining fields from unclaimed lines, and the merged draft is trimmed.
//
// ok is true only when the draft is complete; the partially filled draft is
// returned either way so callers can report what was missing.
func (e *Engine) Extract(text string) (Draft, bool) {
	lines := splitLines(text)
	if len(lines) < minOrderLines {
		return Draft{}, false
	}

	fields, claimed := scanLabeled(lines, e.now())
	fields = classify(lines, claimed, fields)

	draft := Draft{
		CustomerName: deref(fields.name),
		PhoneNumber:  deref(fields.phone),
		Address:      deref(fields.address),
		Items:        deref(fields.items),
		DeliveryDate: fields.date,
	}.trimmed()

	return draft, draft.Complete()
}

// splitLines breaks text into trimmed, non-empty lines preserving order.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
