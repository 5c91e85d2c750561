package leaderboardservice

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const leaderboardSheet = "Leaderboard"

// GenerateLeaderboardWorkbook writes one row per ranked project with a column
// per criterion average. Criteria a project was never scored on stay blank.
func GenerateLeaderboardWorkbook(lb *LeaderboardDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), leaderboardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Rank", "Project", "Team"}
	for _, c := range lb.Criteria {
		header = append(header, c.Name)
	}
	header = append(header, "Total")
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, e := range lb.Entries {
		averages := make(map[uuid.UUID]float64, len(e.Criteria))
		for _, ca := range e.Criteria {
			averages[ca.CriterionID] = ca.Average
		}

		row := []interface{}{e.Rank, e.ProjectName, e.TeamName}
		for _, c := range lb.Criteria {
			if avg, ok := averages[c.ID]; ok {
				row = append(row, avg)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, e.Total)
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(leaderboardSheet, axis, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
