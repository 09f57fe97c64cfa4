package redisstate

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
)

const defaultTTL = 48 * time.Hour

// StateRepository keeps per-participant observed state in Redis so a
// restart mid-matchday does not replay notifications. Entries expire
// after two days; no fixture is tracked longer than that.
type StateRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStateRepository(client *redis.Client, prefix string) *StateRepository {
	if prefix == "" {
		prefix = "btts:state:"
	}
	return &StateRepository{
		client: client,
		prefix: prefix,
		ttl:    defaultTTL,
	}
}

func (r *StateRepository) key(participant string) string {
	return r.prefix + participant
}

func (r *StateRepository) Get(ctx context.Context, participant string) (tracking.ObservedState, bool, error) {
	raw, err := r.client.Get(ctx, r.key(participant)).Bytes()
	if err == redis.Nil {
		return tracking.ObservedState{}, false, nil
	}
	if err != nil {
		return tracking.ObservedState{}, false, fmt.Errorf("redis get state participant=%s: %w", participant, err)
	}

	var state tracking.ObservedState
	if err := sonic.Unmarshal(raw, &state); err != nil {
		return tracking.ObservedState{}, false, fmt.Errorf("decode state participant=%s: %w", participant, err)
	}

	return state, true, nil
}

func (r *StateRepository) Put(ctx context.Context, participant string, state tracking.ObservedState) error {
	raw, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state participant=%s: %w", participant, err)
	}
	if err := r.client.Set(ctx, r.key(participant), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set state participant=%s: %w", participant, err)
	}

	return nil
}

func (r *StateRepository) Delete(ctx context.Context, participant string) error {
	if err := r.client.Del(ctx, r.key(participant)).Err(); err != nil {
		return fmt.Errorf("redis delete state participant=%s: %w", participant, err)
	}

	return nil
}
