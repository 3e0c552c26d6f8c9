package session

import "context"

// Store defines the persistence contract a session middleware needs.
// Implementations translate each call into a single round-trip to the backing
// store and hold no state between calls.
type Store[Data any] interface {
	// Get returns the session data for sid.
	// Returns ErrNotFound if no live record exists; expired records are removed as a side effect.
	Get(ctx context.Context, sid string) (Data, error)
	// Set creates or replaces the record for sid and refreshes its last activity time.
	Set(ctx context.Context, sid string, data Data) error
	// Destroy removes the record for sid. Removing a missing record is not an error.
	Destroy(ctx context.Context, sid string) error
	// Length returns the number of stored records, including expired ones not yet cleaned up.
	Length(ctx context.Context) (int64, error)
	// Clear removes every record.
	Clear(ctx context.Context) error
}
