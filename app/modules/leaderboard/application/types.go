package leaderboardservice

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/domain"
	"github.com/google/uuid"
)

// LeaderboardDTO is a freshly computed leaderboard.
type LeaderboardDTO struct {
	HackathonID uuid.UUID                    `json:"hackathon_id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Criteria    []CriterionColumn            `json:"criteria"`
	Entries     []leaderboarddomain.Standing `json:"entries"`
}

// CriterionColumn describes one criterion in display order.
type CriterionColumn struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
}

// ChartPalette holds hex colors, without the leading '#', for rendered
// leaderboard images.
type ChartPalette struct {
	Background string
	Bar        string
	TextColor  string
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = ChartPalette{
	Background: "ffffff",
	Bar:        "2f6f4f",
	TextColor:  "1f2933",
}
