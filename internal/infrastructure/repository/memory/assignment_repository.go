package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignment.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[string]assignment.Assignment)}
}

func (r *AssignmentRepository) List(_ context.Context) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Participant < out[j].Participant })

	return out, nil
}

func (r *AssignmentRepository) Get(_ context.Context, participant string) (assignment.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[participant]
	if !ok {
		return assignment.Assignment{}, false, nil
	}

	return a, true, nil
}

func (r *AssignmentRepository) Set(_ context.Context, a assignment.Assignment) error {
	r.mu.Lock()
	r.items[a.Participant] = a
	r.mu.Unlock()

	return nil
}

func (r *AssignmentRepository) Replace(_ context.Context, assignments []assignment.Assignment) error {
	next := make(map[string]assignment.Assignment, len(assignments))
	for _, a := range assignments {
		next[a.Participant] = a
	}

	r.mu.Lock()
	r.items = next
	r.mu.Unlock()

	return nil
}
