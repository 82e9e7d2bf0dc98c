// Package kernel contains shared value objects used across the domain model.
//
// It provides:
//   - OrderID: the canonical order identifier ("ORD" + date + suffix)
//   - Phone: a raw customer phone number with international normalization
//
// Value objects in this package are immutable, validated on construction,
// and safe for concurrent use. Zero values are invalid and are rejected by
// the Validate methods.
package kernel
