package leaderboardservice

import (
	"bytes"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GenerateLeaderboardChart produces a PNG bar chart of weighted totals in rank order.
func GenerateLeaderboardChart(entries []leaderboarddomain.Standing, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, 0, len(entries))
	maxTotal := 0.0
	for _, e := range entries {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("#%d %s", e.Rank, e.ProjectName),
			Value: e.Total,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(palette.Bar),
				StrokeColor: drawing.ColorFromHex(palette.Bar),
			},
		})
		if e.Total > maxTotal {
			maxTotal = e.Total
		}
	}
	// A zero-height range cannot be drawn.
	if maxTotal <= 0 {
		maxTotal = 1
	}

	width := 120*len(entries) + 100
	if width < 400 {
		width = 400
	}

	graph := chart.BarChart{
		Title:  "Leaderboard",
		Width:  width,
		Height: 400,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
		},
		TitleStyle: chart.Style{
			FontColor: drawing.ColorFromHex(palette.TextColor),
		},
		XAxis: chart.Style{
			FontColor: drawing.ColorFromHex(palette.TextColor),
		},
		YAxis: chart.YAxis{
			Name: "Weighted total",
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(palette.TextColor),
			},
			Range: &chart.ContinuousRange{Min: 0, Max: maxTotal * 1.1},
		},
		BarWidth:   60,
		BarSpacing: 40,
		Bars:       bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws the message straight onto a PNG canvas; the
// chart types refuse to render without data.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(drawing.ColorFromHex(palette.Background))
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorFromHex(palette.TextColor))
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
