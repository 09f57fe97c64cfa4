package tracking

import "context"

// StateRepository persists per-participant observed state between
// polls. Keys are participant names; reassigning a participant to a
// new fixture replaces the stored state wholesale.
type StateRepository interface {
	Get(ctx context.Context, participant string) (ObservedState, bool, error)
	Put(ctx context.Context, participant string, state ObservedState) error
	Delete(ctx context.Context, participant string) error
}
