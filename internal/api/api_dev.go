package api

import (
	"net/http"
)

func (cfg *APIConfig) handleDeleteAllUsers(w http.ResponseWriter, r *http.Request) {
	if cfg.platform != "dev" {
		respondWithText(w, http.StatusForbidden, "403 Forbidden")
		return
	}

	// tasks cascade with their owners
	if err := cfg.db.DeleteUsers(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not delete users", err)
		return
	}

	respondWithText(w, http.StatusOK, "Successfully deleted all users.")
}

func (cfg *APIConfig) handleGetTotalUserCount(w http.ResponseWriter, r *http.Request) {
	if cfg.platform != "dev" {
		respondWithText(w, http.StatusForbidden, "403 Forbidden")
		return
	}

	count, err := cfg.db.GetUserCount(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not count users", err)
		return
	}

	type rspSchema struct {
		Count int64 `json:"count"`
	}

	respondWithJSON(w, http.StatusOK, rspSchema{Count: count})
}
