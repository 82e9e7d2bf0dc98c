// Package extraction implements the order-extraction engine: it recovers a
// structured order draft (customer name, phone, address, items, optional
// delivery date) from short, order-like chat messages.
//
// Extraction is layered:
//   - a labeled-field pass claims lines with explicit markers ("name:",
//     "phone ... :", "address:", "item ... :") and date-shaped lines
//   - a heuristic classifier assigns the unclaimed lines to the fields still
//     missing, using digit-shape detection for phones, a positional fast
//     path for clean three-line messages, and regex-family scoring with a
//     fixed tie-break order everywhere else
//
// The engine is deterministic, pure, and error-free by design: bad input
// yields an incomplete draft, never an error.
package extraction
