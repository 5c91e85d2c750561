package rosterhandlers

import "net/http"

// Handlers exposes judge roster management over HTTP.
type Handlers interface {
	HandleListJudges(w http.ResponseWriter, r *http.Request)
	HandleAddJudge(w http.ResponseWriter, r *http.Request)
	HandleRemoveJudge(w http.ResponseWriter, r *http.Request)
}
