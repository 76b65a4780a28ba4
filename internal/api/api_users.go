package api

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/yachay/tareas-api/internal/auth"
	"github.com/yachay/tareas-api/internal/database"
)

const minCredentialLength = 5

func (cfg *APIConfig) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failure decoding payload", err)
		return
	}

	// usernames are case-normalized so uniqueness is case-insensitive
	username := strings.ToLower(strings.TrimSpace(rqPayload.Username))

	// length counts characters, not bytes
	if utf8.RuneCountInString(username) < minCredentialLength {
		respondWithError(w, http.StatusBadRequest, "username must be at least 5 characters", nil)
		return
	}
	if utf8.RuneCountInString(rqPayload.Password) < minCredentialLength {
		respondWithError(w, http.StatusBadRequest, "password must be at least 5 characters", nil)
		return
	}

	hashedPass, err := auth.HashPassword(rqPayload.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failure processing request to create user", err)
		return
	}

	_, err = cfg.db.CreateUser(r.Context(), database.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPass,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondWithError(w, http.StatusNotAcceptable, "username already in use", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failure processing request to create user", err)
		return
	}

	respondWithJSON(w, http.StatusOK, "ok")
}
