package cart

import "context"

// Storage persists one raw cart record per shopper session. The record is the
// JSON-encoded entry list; readers treat a missing or unreadable record as an
// empty cart.
type Storage interface {
	// Get returns the raw record, ok=false when no record exists.
	Get(ctx context.Context, sessionID string) (payload string, ok bool, err error)
	// Set replaces the whole record.
	Set(ctx context.Context, sessionID, payload string) error
	// Remove drops the record.
	Remove(ctx context.Context, sessionID string) error
}
