package league

import "context"

// Repository exposes the league table.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByCode(ctx context.Context, code string) (League, bool, error)
}
