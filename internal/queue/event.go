// Package queue defines message payloads exchanged over the message broker.
package queue

// VisitQueue is the durable queue carrying storefront visit events.  The
// publisher and consumer both declare it, so either side may start first.
const VisitQueue = "store.visited"

// StoreVisitedEvent is published every time an anonymous visitor resolves
// a public storefront.  It carries just enough for the consumer to append
// a visit row; rendering never depends on the publish succeeding.
type StoreVisitedEvent struct {
	StoreID   uint64 `json:"store_id"`
	Slug      string `json:"slug"`
	VisitedAt string `json:"visited_at"` // RFC 3339 UTC
}
