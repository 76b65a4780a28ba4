package api

import (
	"net/http"
)

// handleReadiness answers a plain OK once the server is accepting
// requests. It does not probe the database.
func (cfg *APIConfig) handleReadiness(w http.ResponseWriter, r *http.Request) {
	respondWithText(w, http.StatusOK, "OK")
}
