package hackathondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a hackathon, user or role record is not found.
var ErrNotFound = errors.New("not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new hackathon repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetHackathon retrieves a hackathon by ID.
func (r *Impl) GetHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (*Hackathon, error) {
	db = r.resolveDB(db)
	h := new(Hackathon)
	err := db.NewSelect().
		Model(h).
		Where("h.id = ?", hackathonID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("hackathondb.GetHackathon: %w", err)
	}
	return h, nil
}

func (r *Impl) CreateHackathon(ctx context.Context, db bun.IDB, hackathon *Hackathon) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if hackathon.ID == uuid.Nil {
		hackathon.ID = uuid.New()
	}
	hackathon.CreatedAt = now
	hackathon.UpdatedAt = now
	if _, err := db.NewInsert().Model(hackathon).Exec(ctx); err != nil {
		return fmt.Errorf("hackathondb.CreateHackathon: %w", err)
	}
	return nil
}

func (r *Impl) UpdateHackathonStatus(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, status hackathondomain.Status) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Hackathon)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", hackathonID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("hackathondb.UpdateHackathonStatus: %w", err)
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

// GetUser retrieves a user by ID.
func (r *Impl) GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	u := new(User)
	err := db.NewSelect().
		Model(u).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("hackathondb.GetUser: %w", err)
	}
	return u, nil
}

func (r *Impl) GetUsers(ctx context.Context, db bun.IDB, userIDs []uuid.UUID) ([]User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var users []User
	err := db.NewSelect().
		Model(&users).
		Where("u.id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.GetUsers: %w", err)
	}
	return users, nil
}

func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("hackathondb.CreateUser: %w", err)
	}
	return nil
}

func (r *Impl) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	db = r.resolveDB(db)
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("hackathondb.CreateTeam: %w", err)
	}
	return nil
}

func (r *Impl) GetTeams(ctx context.Context, db bun.IDB, teamIDs []uuid.UUID) ([]Team, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var teams []Team
	err := db.NewSelect().
		Model(&teams).
		Where("t.id IN (?)", bun.In(teamIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.GetTeams: %w", err)
	}
	return teams, nil
}

func (r *Impl) CreateProject(ctx context.Context, db bun.IDB, project *Project) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = now
	project.UpdatedAt = now
	if _, err := db.NewInsert().Model(project).Exec(ctx); err != nil {
		return fmt.Errorf("hackathondb.CreateProject: %w", err)
	}
	return nil
}

func (r *Impl) GetProjects(ctx context.Context, db bun.IDB, projectIDs []uuid.UUID) ([]Project, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var projects []Project
	err := db.NewSelect().
		Model(&projects).
		Where("p.id IN (?)", bun.In(projectIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.GetProjects: %w", err)
	}
	return projects, nil
}

// ListSubmittedProjects returns the projects eligible for judging.
func (r *Impl) ListSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]Project, error) {
	db = r.resolveDB(db)
	var projects []Project
	err := db.NewSelect().
		Model(&projects).
		Where("p.hackathon_id = ?", hackathonID).
		Where("p.status = ?", hackathondomain.ProjectStatusSubmitted).
		Where("p.archived = ?", false).
		Order("p.name ASC", "p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.ListSubmittedProjects: %w", err)
	}
	return projects, nil
}

func (r *Impl) CountSubmittedProjects(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Project)(nil)).
		Where("p.hackathon_id = ?", hackathonID).
		Where("p.status = ?", hackathondomain.ProjectStatusSubmitted).
		Where("p.archived = ?", false).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("hackathondb.CountSubmittedProjects: %w", err)
	}
	return count, nil
}

// GetRole retrieves the user's role record in the hackathon.
func (r *Impl) GetRole(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (*RoleAssignment, error) {
	db = r.resolveDB(db)
	role := new(RoleAssignment)
	err := db.NewSelect().
		Model(role).
		Where("hr.hackathon_id = ?", hackathonID).
		Where("hr.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("hackathondb.GetRole: %w", err)
	}
	return role, nil
}

func (r *Impl) IsOrganizer(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*RoleAssignment)(nil)).
		Where("hr.hackathon_id = ?", hackathonID).
		Where("hr.user_id = ?", userID).
		Where("hr.role IN (?)", bun.In([]hackathondomain.Role{hackathondomain.RoleOrganizer, hackathondomain.RoleAdmin})).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("hackathondb.IsOrganizer: %w", err)
	}
	return exists, nil
}

func (r *Impl) ListUsersByRole(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, role hackathondomain.Role) ([]User, error) {
	db = r.resolveDB(db)
	var users []User
	err := db.NewSelect().
		Model(&users).
		Join("JOIN hackathon_roles AS hr ON hr.user_id = u.id").
		Where("hr.hackathon_id = ?", hackathonID).
		Where("hr.role = ?", role).
		Order("u.display_name ASC", "u.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.ListUsersByRole: %w", err)
	}
	return users, nil
}

// UpsertRole creates or overwrites the role for (hackathon, user).
func (r *Impl) UpsertRole(ctx context.Context, db bun.IDB, role *RoleAssignment) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	role.UpdatedAt = now

	_, err := db.NewInsert().
		Model(role).
		On("CONFLICT (hackathon_id, user_id) DO UPDATE").
		Set("role = EXCLUDED.role").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("hackathondb.UpsertRole: %w", err)
	}
	return nil
}

func (r *Impl) AppendRoleChange(ctx context.Context, db bun.IDB, change *RoleChange) error {
	db = r.resolveDB(db)
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	change.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(change).Exec(ctx); err != nil {
		return fmt.Errorf("hackathondb.AppendRoleChange: %w", err)
	}
	return nil
}

// ListRoleChanges returns the audit trail oldest first.
func (r *Impl) ListRoleChanges(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]RoleChange, error) {
	db = r.resolveDB(db)
	var changes []RoleChange
	err := db.NewSelect().
		Model(&changes).
		Where("hrc.hackathon_id = ?", hackathonID).
		Order("hrc.created_at ASC", "hrc.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("hackathondb.ListRoleChanges: %w", err)
	}
	return changes, nil
}
