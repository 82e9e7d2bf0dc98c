package extraction

import (
	"strings"
	"time"
)

// Draft is the transient result of extracting an order from chat text.
// A draft is "complete" when every required field is filled; the delivery
// date is always optional. Complete drafts are handed to the order creation
// use case, incomplete ones are dropped or rejected by the caller.
type Draft struct {
	CustomerName string
	PhoneNumber  string
	Address      string
	Items        string
	DeliveryDate *time.Time
}

// Complete reports whether customerName, phoneNumber, address, and items are
// all non-empty. DeliveryDate absence never makes a draft incomplete.
func (d Draft) Complete() bool {
	return d.CustomerName != "" && d.PhoneNumber != "" && d.Address != "" && d.Items != ""
}

// trimmed returns a copy with surrounding whitespace removed from all fields.
func (d Draft) trimmed() Draft {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	d.Address = strings.TrimSpace(d.Address)
	d.Items = strings.TrimSpace(d.Items)
	return d
}
