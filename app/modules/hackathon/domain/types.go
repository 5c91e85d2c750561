// Package hackathondomain holds the hackathon lifecycle, project and role vocabulary
// shared by the judging modules.
package hackathondomain

// Status is the lifecycle state of a hackathon.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusInProgress         Status = "in_progress"
	StatusJudging            Status = "judging"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
)

// ProjectStatus is the submission state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusSubmitted ProjectStatus = "submitted"
	ProjectStatusWithdrawn ProjectStatus = "withdrawn"
)

// Role is a user's role within a single hackathon.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleJudge       Role = "judge"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

// IsOrganizer reports whether the role may administer the hackathon.
func (r Role) IsOrganizer() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

// CanJudge reports whether the role may be handed judging assignments.
func (r Role) CanJudge() bool {
	return r == RoleJudge || r.IsOrganizer()
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleParticipant, RoleJudge, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}
