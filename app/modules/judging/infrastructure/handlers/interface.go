package judginghandlers

import "net/http"

// Handlers exposes assignments and score submission over HTTP.
type Handlers interface {
	HandleListMyAssignments(w http.ResponseWriter, r *http.Request)
	HandleGetAssignment(w http.ResponseWriter, r *http.Request)
	HandleSubmitScores(w http.ResponseWriter, r *http.Request)
}
