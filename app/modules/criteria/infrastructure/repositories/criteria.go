package criteriadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a criterion is not found.
var ErrNotFound = errors.New("criterion not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new criteria repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ListByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Criterion, error) {
	db = r.resolveDB(db)
	var criteria []Criterion
	err := db.NewSelect().
		Model(&criteria).
		Where("jc.hackathon_id = ?", hackathonID).
		Order("jc.display_order ASC", "jc.created_at ASC", "jc.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("criteriadb.ListByHackathon: %w", err)
	}
	return criteria, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, criterionID uuid.UUID) (*Criterion, error) {
	db = r.resolveDB(db)
	c := new(Criterion)
	err := db.NewSelect().
		Model(c).
		Where("jc.id = ?", criterionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("criteriadb.GetByID: %w", err)
	}
	return c, nil
}

func (r *Impl) CountByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Criterion)(nil)).
		Where("jc.hackathon_id = ?", hackathonID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("criteriadb.CountByHackathon: %w", err)
	}
	return count, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, criterion *Criterion) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if criterion.ID == uuid.Nil {
		criterion.ID = uuid.New()
	}
	criterion.CreatedAt = now
	criterion.UpdatedAt = now
	if _, err := db.NewInsert().Model(criterion).Exec(ctx); err != nil {
		return fmt.Errorf("criteriadb.Create: %w", err)
	}
	return nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, criterion *Criterion) error {
	db = r.resolveDB(db)
	criterion.UpdatedAt = time.Now().UTC()
	result, err := db.NewUpdate().
		Model(criterion).
		Column("name", "description", "max_score", "weight", "display_order", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("criteriadb.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, criterionID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Criterion)(nil)).
		Where("id = ?", criterionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("criteriadb.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
