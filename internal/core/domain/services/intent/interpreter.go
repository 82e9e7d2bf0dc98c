// Package intent classifies administrative chat messages into commands the
// lifecycle use cases can execute. Classification is a single pure function
// returning a tagged Command value, which keeps the dispatch table
// exhaustively testable.
package intent

import (
	"regexp"
	"strings"
)

// Kind enumerates the administrative actions a message can resolve to.
// Every message resolves to exactly one kind; unrecognized text is a NoOp,
// never an error.
type Kind int

const (
	// NoOp means the message carries no recognized administrative intent.
	NoOp Kind = iota

	// DeliverByReply marks the order quoted by the message as delivered.
	DeliverByReply

	// CancelByReply cancels the order quoted by the message.
	CancelByReply

	// DeliverByID marks an explicitly identified order as delivered.
	DeliverByID

	// CancelByID cancels an explicitly identified order.
	CancelByID

	// Report requests an order-count summary.
	Report

	// Help requests the usage text.
	Help
)

// ReportKind distinguishes the summary windows a report request can ask for.
type ReportKind int

const (
	ReportNone ReportKind = iota
	ReportDaily
	ReportWeekly
)

// Command is the tagged result of classifying one message.
// OrderID is set only for the deliver/cancel kinds; Report only for reports.
type Command struct {
	Kind    Kind
	OrderID string
	Report  ReportKind
}

// Message is the slice of an inbound chat message the interpreter needs:
// the body, whether it replies to an earlier message, and the quoted body
// when it does.
type Message struct {
	Body       string
	IsReply    bool
	QuotedBody string
}

// orderRefPattern finds an order reference in quoted text. Order ids are
// always rendered as "Order #<id>" in outbound messages, so that exact shape
// is what replies are matched against. The first match wins.
var orderRefPattern = regexp.MustCompile(`(?i)order\s+#([A-Za-z0-9]+)`)

const (
	deliverByIDPrefix = "done #"
	cancelByIDPrefix  = "cancel #"
)

// Classify resolves a message to at most one administrative command.
//
// Rules, checked on the trimmed body, case-insensitively:
//   - reply with body exactly "done"  -> DeliverByReply (id from quoted text)
//   - reply with body exactly "cancel" -> CancelByReply (id from quoted text)
//   - body starting "done #"   -> DeliverByID, id is the trimmed remainder
//   - body starting "cancel #" -> CancelByID, id is the trimmed remainder
//   - exact report/help keywords -> Report / Help
//
// A reply command whose quoted text yields no order reference degrades to
// NoOp. Anything unrecognized is a NoOp.
func Classify(msg Message) Command {
	body := strings.TrimSpace(msg.Body)
	lower := strings.ToLower(body)

	if msg.IsReply {
		switch lower {
		case "done":
			return replyCommand(DeliverByReply, msg.QuotedBody)
		case "cancel":
			return replyCommand(CancelByReply, msg.QuotedBody)
		}
	}

	switch {
	case strings.HasPrefix(lower, deliverByIDPrefix):
		return idCommand(DeliverByID, body[len(deliverByIDPrefix):])
	case strings.HasPrefix(lower, cancelByIDPrefix):
		return idCommand(CancelByID, body[len(cancelByIDPrefix):])
	}

	switch lower {
	case "report", "daily report", "today's report":
		return Command{Kind: Report, Report: ReportDaily}
	case "weekly report", "week report":
		return Command{Kind: Report, Report: ReportWeekly}
	case "help", "commands":
		return Command{Kind: Help}
	}

	return Command{Kind: NoOp}
}

func replyCommand(kind Kind, quotedBody string) Command {
	id := extractOrderRef(quotedBody)
	if id == "" {
		return Command{Kind: NoOp}
	}
	return Command{Kind: kind, OrderID: id}
}

func idCommand(kind Kind, rest string) Command {
	id := strings.TrimSpace(rest)
	if id == "" {
		return Command{Kind: NoOp}
	}
	return Command{Kind: kind, OrderID: id}
}

// extractOrderRef pulls the first "Order #<id>" token out of quoted text.
// Returns the empty string when no reference is present.
func extractOrderRef(text string) string {
	match := orderRefPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}
