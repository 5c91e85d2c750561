package hackathondb

import (
	"time"

	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Hackathon is an event with its lifecycle status.
type Hackathon struct {
	bun.BaseModel `bun:"table:hackathons,alias:h"`

	ID        uuid.UUID              `bun:"id,pk,type:uuid"`
	Name      string                 `bun:"name,notnull"`
	Status    hackathondomain.Status `bun:"status,notnull"`
	CreatedAt time.Time              `bun:"created_at,notnull"`
	UpdatedAt time.Time              `bun:"updated_at,notnull"`
}

// User is a platform account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	DisplayName string    `bun:"display_name,notnull"`
	Email       string    `bun:"email,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

// Team groups participants of one hackathon.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	HackathonID uuid.UUID `bun:"hackathon_id,type:uuid,notnull"`
	Name        string    `bun:"name,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

// Project is a team's entry in a hackathon.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          uuid.UUID                     `bun:"id,pk,type:uuid"`
	HackathonID uuid.UUID                     `bun:"hackathon_id,type:uuid,notnull"`
	TeamID      uuid.UUID                     `bun:"team_id,type:uuid,notnull"`
	Name        string                        `bun:"name,notnull"`
	Status      hackathondomain.ProjectStatus `bun:"status,notnull"`
	Archived    bool                          `bun:"archived,notnull"`
	CreatedAt   time.Time                     `bun:"created_at,notnull"`
	UpdatedAt   time.Time                     `bun:"updated_at,notnull"`
}

// RoleAssignment is a user's role in a hackathon. One row per (hackathon, user).
type RoleAssignment struct {
	bun.BaseModel `bun:"table:hackathon_roles,alias:hr"`

	ID          uuid.UUID            `bun:"id,pk,type:uuid"`
	HackathonID uuid.UUID            `bun:"hackathon_id,type:uuid,notnull"`
	UserID      uuid.UUID            `bun:"user_id,type:uuid,notnull"`
	Role        hackathondomain.Role `bun:"role,notnull"`
	CreatedAt   time.Time            `bun:"created_at,notnull"`
	UpdatedAt   time.Time            `bun:"updated_at,notnull"`
}

// RoleChange is an append-only audit record of a role transition.
type RoleChange struct {
	bun.BaseModel `bun:"table:hackathon_role_changes,alias:hrc"`

	ID           uuid.UUID             `bun:"id,pk,type:uuid"`
	HackathonID  uuid.UUID             `bun:"hackathon_id,type:uuid,notnull"`
	UserID       uuid.UUID             `bun:"user_id,type:uuid,notnull"`
	PreviousRole *hackathondomain.Role `bun:"previous_role"`
	NewRole      hackathondomain.Role  `bun:"new_role,notnull"`
	ChangedBy    uuid.UUID             `bun:"changed_by,type:uuid,notnull"`
	CreatedAt    time.Time             `bun:"created_at,notnull"`
}
