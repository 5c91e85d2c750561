package hackathondb

import (
	"context"

	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for hackathon, user, team, project and role persistence.
// All methods accept an optional bun.IDB; nil falls back to the default connection.
//
// Error semantics:
//   - ErrNotFound: Record does not exist
//   - Other errors: Infrastructure failures (DB connection, query errors)
type Repository interface {
	// GetHackathon retrieves a hackathon by ID.
	GetHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (*Hackathon, error)
	CreateHackathon(ctx context.Context, db bun.IDB, hackathon *Hackathon) error
	UpdateHackathonStatus(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, status hackathondomain.Status) error

	GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)
	// GetUsers returns the users that exist among userIDs; missing ids are skipped.
	GetUsers(ctx context.Context, db bun.IDB, userIDs []uuid.UUID) ([]User, error)
	CreateUser(ctx context.Context, db bun.IDB, user *User) error

	CreateTeam(ctx context.Context, db bun.IDB, team *Team) error
	GetTeams(ctx context.Context, db bun.IDB, teamIDs []uuid.UUID) ([]Team, error)

	CreateProject(ctx context.Context, db bun.IDB, project *Project) error
	GetProjects(ctx context.Context, db bun.IDB, projectIDs []uuid.UUID) ([]Project, error)
	// ListSubmittedProjects returns submitted, non-archived projects ordered by name.
	ListSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Project, error)
	CountSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error)

	// GetRole returns the caller's role record. Returns ErrNotFound when the user
	// holds no role in the hackathon.
	GetRole(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (*RoleAssignment, error)
	// IsOrganizer reports whether the user is an organizer or admin of the hackathon.
	IsOrganizer(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (bool, error)
	// ListUsersByRole returns users holding role in the hackathon ordered by display name.
	ListUsersByRole(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, role hackathondomain.Role) ([]User, error)
	// UpsertRole creates the role record or overwrites the existing role.
	UpsertRole(ctx context.Context, db bun.IDB, role *RoleAssignment) error

	AppendRoleChange(ctx context.Context, db bun.IDB, change *RoleChange) error
	ListRoleChanges(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]RoleChange, error)
}
