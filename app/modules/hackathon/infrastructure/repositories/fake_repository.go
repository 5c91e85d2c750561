package hackathondb

import (
	"context"

	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
// Unset functions return zero values; lookups return ErrNotFound.
type FakeRepository struct {
	GetHackathonFn           func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (*Hackathon, error)
	CreateHackathonFn        func(ctx context.Context, db bun.IDB, hackathon *Hackathon) error
	UpdateHackathonStatusFn  func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, status hackathondomain.Status) error
	GetUserFn                func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)
	GetUsersFn               func(ctx context.Context, db bun.IDB, userIDs []uuid.UUID) ([]User, error)
	CreateUserFn             func(ctx context.Context, db bun.IDB, user *User) error
	CreateTeamFn             func(ctx context.Context, db bun.IDB, team *Team) error
	GetTeamsFn               func(ctx context.Context, db bun.IDB, teamIDs []uuid.UUID) ([]Team, error)
	CreateProjectFn          func(ctx context.Context, db bun.IDB, project *Project) error
	GetProjectsFn            func(ctx context.Context, db bun.IDB, projectIDs []uuid.UUID) ([]Project, error)
	ListSubmittedProjectsFn  func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Project, error)
	CountSubmittedProjectsFn func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error)
	GetRoleFn                func(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (*RoleAssignment, error)
	IsOrganizerFn            func(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (bool, error)
	ListUsersByRoleFn        func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, role hackathondomain.Role) ([]User, error)
	UpsertRoleFn             func(ctx context.Context, db bun.IDB, role *RoleAssignment) error
	AppendRoleChangeFn       func(ctx context.Context, db bun.IDB, change *RoleChange) error
	ListRoleChangesFn        func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]RoleChange, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) GetHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (*Hackathon, error) {
	if f.GetHackathonFn != nil {
		return f.GetHackathonFn(ctx, db, hackathonID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CreateHackathon(ctx context.Context, db bun.IDB, hackathon *Hackathon) error {
	if f.CreateHackathonFn != nil {
		return f.CreateHackathonFn(ctx, db, hackathon)
	}
	return nil
}

func (f *FakeRepository) UpdateHackathonStatus(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, status hackathondomain.Status) error {
	if f.UpdateHackathonStatusFn != nil {
		return f.UpdateHackathonStatusFn(ctx, db, hackathonID, status)
	}
	return nil
}

func (f *FakeRepository) GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	if f.GetUserFn != nil {
		return f.GetUserFn(ctx, db, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetUsers(ctx context.Context, db bun.IDB, userIDs []uuid.UUID) ([]User, error) {
	if f.GetUsersFn != nil {
		return f.GetUsersFn(ctx, db, userIDs)
	}
	return nil, nil
}

func (f *FakeRepository) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, db, user)
	}
	return nil
}

func (f *FakeRepository) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if f.CreateTeamFn != nil {
		return f.CreateTeamFn(ctx, db, team)
	}
	return nil
}

func (f *FakeRepository) GetTeams(ctx context.Context, db bun.IDB, teamIDs []uuid.UUID) ([]Team, error) {
	if f.GetTeamsFn != nil {
		return f.GetTeamsFn(ctx, db, teamIDs)
	}
	return nil, nil
}

func (f *FakeRepository) CreateProject(ctx context.Context, db bun.IDB, project *Project) error {
	if f.CreateProjectFn != nil {
		return f.CreateProjectFn(ctx, db, project)
	}
	return nil
}

func (f *FakeRepository) GetProjects(ctx context.Context, db bun.IDB, projectIDs []uuid.UUID) ([]Project, error) {
	if f.GetProjectsFn != nil {
		return f.GetProjectsFn(ctx, db, projectIDs)
	}
	return nil, nil
}

func (f *FakeRepository) ListSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Project, error) {
	if f.ListSubmittedProjectsFn != nil {
		return f.ListSubmittedProjectsFn(ctx, db, hackathonID)
	}
	return nil, nil
}

func (f *FakeRepository) CountSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error) {
	if f.CountSubmittedProjectsFn != nil {
		return f.CountSubmittedProjectsFn(ctx, db, hackathonID)
	}
	return 0, nil
}

func (f *FakeRepository) GetRole(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (*RoleAssignment, error) {
	if f.GetRoleFn != nil {
		return f.GetRoleFn(ctx, db, hackathonID, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) IsOrganizer(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (bool, error) {
	if f.IsOrganizerFn != nil {
		return f.IsOrganizerFn(ctx, db, hackathonID, userID)
	}
	return false, nil
}

func (f *FakeRepository) ListUsersByRole(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, role hackathondomain.Role) ([]User, error) {
	if f.ListUsersByRoleFn != nil {
		return f.ListUsersByRoleFn(ctx, db, hackathonID, role)
	}
	return nil, nil
}

func (f *FakeRepository) UpsertRole(ctx context.Context, db bun.IDB, role *RoleAssignment) error {
	if f.UpsertRoleFn != nil {
		return f.UpsertRoleFn(ctx, db, role)
	}
	return nil
}

func (f *FakeRepository) AppendRoleChange(ctx context.Context, db bun.IDB, change *RoleChange) error {
	if f.AppendRoleChangeFn != nil {
		return f.AppendRoleChangeFn(ctx, db, change)
	}
	return nil
}

func (f *FakeRepository) ListRoleChanges(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]RoleChange, error) {
	if f.ListRoleChangesFn != nil {
		return f.ListRoleChangesFn(ctx, db, hackathonID)
	}
	return nil, nil
}
