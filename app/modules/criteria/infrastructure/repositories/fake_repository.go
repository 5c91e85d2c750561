package criteriadb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	ListByHackathonFn  func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Criterion, error)
	GetByIDFn          func(ctx context.Context, db bun.IDB, criterionID uuid.UUID) (*Criterion, error)
	CountByHackathonFn func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error)
	CreateFn           func(ctx context.Context, db bun.IDB, criterion *Criterion) error
	UpdateFn           func(ctx context.Context, db bun.IDB, criterion *Criterion) error
	DeleteFn           func(ctx context.Context, db bun.IDB, criterionID uuid.UUID) error
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) ListByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Criterion, error) {
	if f.ListByHackathonFn != nil {
		return f.ListByHackathonFn(ctx, db, hackathonID)
	}
	return nil, nil
}

func (f *FakeRepository) GetByID(ctx context.Context, db bun.IDB, criterionID uuid.UUID) (*Criterion, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, db, criterionID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CountByHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error) {
	if f.CountByHackathonFn != nil {
		return f.CountByHackathonFn(ctx, db, hackathonID)
	}
	return 0, nil
}

func (f *FakeRepository) Create(ctx context.Context, db bun.IDB, criterion *Criterion) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, db, criterion)
	}
	return nil
}

func (f *FakeRepository) Update(ctx context.Context, db bun.IDB, criterion *Criterion) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, db, criterion)
	}
	return nil
}

func (f *FakeRepository) Delete(ctx context.Context, db bun.IDB, criterionID uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, db, criterionID)
	}
	return nil
}
