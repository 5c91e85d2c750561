package criteriadb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Criterion is a weighted scoring dimension of a hackathon.
type Criterion struct {
	bun.BaseModel `bun:"table:judging_criteria,alias:jc"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	HackathonID  uuid.UUID `bun:"hackathon_id,type:uuid,notnull"`
	Name         string    `bun:"name,notnull"`
	Description  *string   `bun:"description"`
	MaxScore     int       `bun:"max_score,notnull"`
	Weight       float64   `bun:"weight,notnull"`
	DisplayOrder int       `bun:"display_order,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}
