package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) List(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []assignmentTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT participant, event_id FROM assignments ORDER BY participant`)
	if err != nil {
		return nil, fmt.Errorf("select assignments: %w", err)
	}

	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignment.Assignment{
			Participant: row.Participant,
			EventID:     row.EventID,
		})
	}

	return out, nil
}

func (r *AssignmentRepository) Get(ctx context.Context, participant string) (assignment.Assignment, bool, error) {
	var row assignmentTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT participant, event_id FROM assignments WHERE participant = $1`, participant)
	if err != nil {
		if isNotFound(err) {
			return assignment.Assignment{}, false, nil
		}
		return assignment.Assignment{}, false, fmt.Errorf("get assignment: %w", err)
	}

	return assignment.Assignment{Participant: row.Participant, EventID: row.EventID}, true, nil
}

func (r *AssignmentRepository) Set(ctx context.Context, a assignment.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (participant, event_id)
		 VALUES ($1, $2)
		 ON CONFLICT (participant) DO UPDATE SET event_id = EXCLUDED.event_id`,
		a.Participant, a.EventID)
	if err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}

	return nil
}

func (r *AssignmentRepository) Replace(ctx context.Context, assignments []assignment.Assignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace assignments: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO assignments (participant, event_id) VALUES ($1, $2)`,
			a.Participant, a.EventID); err != nil {
			return fmt.Errorf("insert assignment participant=%s: %w", a.Participant, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace assignments: %w", err)
	}

	return nil
}
