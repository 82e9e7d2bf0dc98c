package chat

import (
	"fmt"
	"strings"

	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/services/extraction"
	"chatorder/internal/core/domain/services/intent"
)

// confirmationText renders the order confirmation reply. The "Order #<id>"
// token must stay in this exact shape: reply-based admin commands locate the
// order id by matching it in quoted text.
func confirmationText(orderID string, draft extraction.Draft, phone kernel.Phone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%s confirmed!\n", orderID)
	fmt.Fprintf(&b, "Customer: %s\n", draft.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", phone.Raw())
	fmt.Fprintf(&b, "Address: %s\n", draft.Address)
	fmt.Fprintf(&b, "Items: %s", draft.Items)
	if draft.DeliveryDate != nil {
		fmt.Fprintf(&b, "\nDelivery: %s", draft.DeliveryDate.Format("Mon, 02 Jan 2006"))
	}
	return b.String()
}

// rejectionText names the fields extraction could not find.
func rejectionText(draft extraction.Draft) string {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(draft.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(draft.PhoneNumber) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(draft.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(draft.Items) == "" {
		missing = append(missing, "items")
	}

	if len(missing) == 0 {
		return "Sorry, I couldn't read that as an order. " +
			"Please send the customer's name, phone, address and items, one per line."
	}

	return fmt.Sprintf(
		"Sorry, I couldn't read that as an order (missing: %s). "+
			"Please send the customer's name, phone, address and items, one per line.",
		strings.Join(missing, ", "),
	)
}

func persistenceApologyText() string {
	return "Something went wrong on our side, please try again in a moment."
}

func deliveredText(orderID string) string {
	return fmt.Sprintf("Order #%s marked as delivered.", orderID)
}

func alreadyDeliveredText(orderID string) string {
	return fmt.Sprintf("Order #%s is already marked as delivered.", orderID)
}

func cannotDeliverText(orderID string) string {
	return fmt.Sprintf("Order #%s was cancelled and cannot be delivered.", orderID)
}

func cancelledText(orderID string) string {
	return fmt.Sprintf("Order #%s cancelled.", orderID)
}

func alreadyCancelledText(orderID string) string {
	return fmt.Sprintf("Order #%s is already cancelled.", orderID)
}

func cannotCancelText(orderID string) string {
	return fmt.Sprintf("Order #%s was delivered and cannot be cancelled.", orderID)
}

func unknownOrderText(orderID string) string {
	return fmt.Sprintf("I don't know any order with id %q.", orderID)
}

func summaryText(kind intent.ReportKind, stats queries.GetOrderStatsQueryResponse) string {
	title := "Today's orders"
	if kind == intent.ReportWeekly {
		title = "Orders in the last 7 days"
	}

	return fmt.Sprintf(
		"%s: %d total\nPending: %d\nDelivered: %d\nCancelled: %d",
		title, stats.Total, stats.Pending, stats.Delivered, stats.Cancelled,
	)
}

func helpText() string {
	return strings.Join([]string{
		"Commands:",
		`- reply "done" to an order confirmation to mark it delivered`,
		`- reply "cancel" to an order confirmation to cancel it`,
		`- "done #<order id>" / "cancel #<order id>" for explicit ids`,
		`- "report" for today's summary, "weekly report" for the last 7 days`,
	}, "\n")
}
