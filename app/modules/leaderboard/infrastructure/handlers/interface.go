package leaderboardhandlers

import "net/http"

// Handlers exposes the leaderboard and its exports over HTTP.
type Handlers interface {
	HandleGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleExportXLSX(w http.ResponseWriter, r *http.Request)
	HandleChartPNG(w http.ResponseWriter, r *http.Request)
}
