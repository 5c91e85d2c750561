package criteriadb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for judging criteria persistence.
type Repository interface {
	// ListByHackathon returns criteria ordered by display order, then creation time.
	ListByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Criterion, error)

	// GetByID retrieves a criterion. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, db bun.IDB, criterionID uuid.UUID) (*Criterion, error)

	CountByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error)

	Create(ctx context.Context, db bun.IDB, criterion *Criterion) error

	// Update overwrites the mutable columns of an existing criterion.
	Update(ctx context.Context, db bun.IDB, criterion *Criterion) error

	// Delete removes a criterion. Score rows that reference it are left in place.
	Delete(ctx context.Context, db bun.IDB, criterionID uuid.UUID) error
}
