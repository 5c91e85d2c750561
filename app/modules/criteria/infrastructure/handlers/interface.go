package criteriahandlers

import "net/http"

// Handlers exposes the criteria store over HTTP.
type Handlers interface {
	HandleListCriteria(w http.ResponseWriter, r *http.Request)
	HandleCreateCriterion(w http.ResponseWriter, r *http.Request)
	HandleUpdateCriterion(w http.ResponseWriter, r *http.Request)
	HandleDeleteCriterion(w http.ResponseWriter, r *http.Request)
}
