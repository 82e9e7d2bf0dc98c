// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with state transitions
// and the append-only audit trail.
//
// The package includes:
//   - Order: The aggregate root that owns the captured order data and lifecycle
//   - Status: A state machine enforcing pending -> delivered|cancelled
//   - HistoryEntry: An immutable audit record written on every transition
//
// Key business rules:
//   - Orders must have a name, normalized phone, address, and item list
//   - Pending is the only entry state; Delivered and Cancelled are terminal
//   - Repeated terminal transitions are idempotent no-ops, reported through
//     ErrAlreadyDelivered / ErrAlreadyCancelled
//   - Cross-terminal transitions are rejected with ErrInvalidTransition
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
