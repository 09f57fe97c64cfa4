package assignment

import "context"

// Repository persists the participant-to-fixture map.
type Repository interface {
	// List returns every assignment, including unassigned participants.
	List(ctx context.Context) ([]Assignment, error)
	Get(ctx context.Context, participant string) (Assignment, bool, error)
	// Set upserts one participant's assignment. An empty event id
	// clears it.
	Set(ctx context.Context, a Assignment) error
	// Replace swaps the whole map atomically.
	Replace(ctx context.Context, assignments []Assignment) error
}
