// Package leaderboarddomain holds the pure leaderboard math: per-criterion
// averages, weighted totals and ranking. It has no storage dependencies.
package leaderboarddomain

import (
	"sort"

	"github.com/google/uuid"
)

// Criterion is a scoring dimension. Callers pass criteria in display order.
type Criterion struct {
	ID     uuid.UUID
	Name   string
	Weight float64
}

// Project is a ranked entry. Callers pass projects in the order ties should keep.
type Project struct {
	ID       uuid.UUID
	Name     string
	TeamID   uuid.UUID
	TeamName string
}

// Score is a single judge's value for one criterion of one project.
type Score struct {
	ProjectID   uuid.UUID
	CriterionID uuid.UUID
	Value       int
}

// CriterionAverage is the mean of all scores one criterion received on a project.
type CriterionAverage struct {
	CriterionID uuid.UUID `json:"criterion_id"`
	Name        string    `json:"name"`
	Average     float64   `json:"average"`
	Count       int       `json:"score_count"`
}

// Standing is one leaderboard row.
type Standing struct {
	Rank        int                `json:"rank"`
	ProjectID   uuid.UUID          `json:"project_id"`
	ProjectName string             `json:"project_name"`
	TeamID      uuid.UUID          `json:"team_id"`
	TeamName    string             `json:"team_name"`
	Criteria    []CriterionAverage `json:"criteria"`
	Total       float64            `json:"total"`
}

// ComputeStandings ranks projects by weighted total, descending.
//
// A criterion's average counts only the judges who scored it. The weighted total
// is sum(weight*average)/sum(weight) over criteria with at least one score, so
// missing scores are excluded rather than treated as zero. Scores for criteria
// not in the list are ignored. Equal totals keep input order.
func ComputeStandings(criteria []Criterion, projects []Project, scores []Score) []Standing {
	if len(criteria) == 0 || len(projects) == 0 {
		return []Standing{}
	}

	known := make(map[uuid.UUID]struct{}, len(criteria))
	for _, c := range criteria {
		known[c.ID] = struct{}{}
	}

	type tally struct {
		sum   int
		count int
	}
	byProject := make(map[uuid.UUID]map[uuid.UUID]*tally, len(projects))
	for _, s := range scores {
		if _, ok := known[s.CriterionID]; !ok {
			continue
		}
		perCriterion, ok := byProject[s.ProjectID]
		if !ok {
			perCriterion = make(map[uuid.UUID]*tally)
			byProject[s.ProjectID] = perCriterion
		}
		t, ok := perCriterion[s.CriterionID]
		if !ok {
			t = &tally{}
			perCriterion[s.CriterionID] = t
		}
		t.sum += s.Value
		t.count++
	}

	standings := make([]Standing, 0, len(projects))
	for _, p := range projects {
		perCriterion := byProject[p.ID]
		averages := make([]CriterionAverage, 0, len(criteria))
		var weighted, weights float64
		for _, c := range criteria {
			t, ok := perCriterion[c.ID]
			if !ok {
				continue
			}
			avg := float64(t.sum) / float64(t.count)
			averages = append(averages, CriterionAverage{
				CriterionID: c.ID,
				Name:        c.Name,
				Average:     avg,
				Count:       t.count,
			})
			weighted += c.Weight * avg
			weights += c.Weight
		}

		total := 0.0
		if weights > 0 {
			total = weighted / weights
		}
		standings = append(standings, Standing{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			TeamID:      p.TeamID,
			TeamName:    p.TeamName,
			Criteria:    averages,
			Total:       total,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total > standings[j].Total
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
