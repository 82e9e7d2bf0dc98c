// Package ports declares the interfaces through which the application core
// talks to the outside world: persistence, outbound messaging, and inbound
// message deduplication. Adapters implement these; the core only depends on
// this package.
package ports
