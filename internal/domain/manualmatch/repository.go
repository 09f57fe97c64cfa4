package manualmatch

import "context"

// Repository persists operator-entered fixtures.
type Repository interface {
	List(ctx context.Context) ([]ManualMatch, error)
	// Add stores a fixture; adding an event id that already exists
	// overwrites the previous entry.
	Add(ctx context.Context, m ManualMatch) error
	// Remove deletes by event id and reports whether it existed.
	Remove(ctx context.Context, eventID string) (bool, error)
}
