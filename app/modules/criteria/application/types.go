package criteriaservice

import (
	"time"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	"github.com/google/uuid"
)

// CriterionDTO is the caller-facing view of a criterion.
type CriterionDTO struct {
	ID           uuid.UUID `json:"id"`
	HackathonID  uuid.UUID `json:"hackathon_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	MaxScore     int       `json:"max_score"`
	Weight       float64   `json:"weight"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCriterionRequest carries the fields of a new criterion.
// DisplayOrder defaults to the end of the current list when nil.
type CreateCriterionRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	MaxScore     int     `json:"max_score"`
	Weight       float64 `json:"weight"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// UpdateCriterionRequest is a partial update; nil fields are left unchanged.
type UpdateCriterionRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	MaxScore     *int     `json:"max_score,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
}

func toDTO(c *criteriadb.Criterion) *CriterionDTO {
	return &CriterionDTO{
		ID:           c.ID,
		HackathonID:  c.HackathonID,
		Name:         c.Name,
		Description:  c.Description,
		MaxScore:     c.MaxScore,
		Weight:       c.Weight,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
