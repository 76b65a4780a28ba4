package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yachay/tareas-api/internal/auth"
)

// handleLoginUser verifies credentials from a form-encoded body and issues
// an access token. Unknown usernames and wrong passwords answer with the
// same body so the endpoint cannot be used to enumerate accounts; the
// distinction lives only in the logs.
func (cfg *APIConfig) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "could not parse login form", err)
		return
	}

	username := strings.ToLower(strings.TrimSpace(r.PostFormValue("username")))
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		respondWithError(w, http.StatusBadRequest, "Missing credential(s)", nil)
		return
	}

	dbUser, err := cfg.db.GetUserByUsername(r.Context(), username)
	if err != nil {
		slog.Error("login failed: unknown username: " + err.Error())
		respondWithError(w, http.StatusUnauthorized, "incorrect username or password", nil)
		return
	}

	match, err := auth.CheckPasswordHash(password, dbUser.HashedPassword)
	if err != nil || !match {
		slog.Error("login failed: password mismatch for user " + dbUser.ID.String())
		respondWithError(w, http.StatusUnauthorized, "incorrect username or password", nil)
		return
	}

	accessToken, err := auth.MakeJWT(dbUser.ID, jwt.SigningMethodHS256, cfg.secret, cfg.tokenExpiry)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Trouble logging in", err)
		return
	}

	rspPayload := Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}

	respondWithJSON(w, http.StatusOK, rspPayload)
}
