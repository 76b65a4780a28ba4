package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func decodePayload[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	defer r.Body.Close()
	if err != nil {
		return v, fmt.Errorf("failure decoding request payload: %w", err)
	}
	return v, err
}

func makeStatusCodeMsg(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

func respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	// prefix the message with a status code message
	errorMessage := makeStatusCodeMsg(code)
	// add the optional info message, if it exists
	if msg != "" {
		errorMessage += fmt.Sprintf("; %s", msg)
	}
	// add the technical error message, if it exists
	if err != nil {
		errorMessage += fmt.Sprintf(": %s", err.Error())
	}

	// log the error on the server; the technical part never reaches the client
	slog.Error(errorMessage, slog.Int("HTTP Status Code", code))

	type errorResponse struct {
		Error string `json:"error"`
	}
	respondWithJSON(w, code, errorResponse{
		Error: msg,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("could not marshal JSON for response: " + err.Error())
		w.WriteHeader(500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(data)
	if err != nil {
		slog.Error("could not write to header from JSON payload: " + err.Error())
	}
}

func respondWithText(w http.ResponseWriter, code int, msg string) {
	// if message is empty, set it to AT LEAST the status code message
	if msg == "" {
		msg = makeStatusCodeMsg(code)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(msg)); err != nil {
		slog.Error(err.Error())
	}
}

// Try to parse input path parameter; return uuid.Nil on empty
func parseUUIDFromPath(pathParam string, r *http.Request) (uuid.UUID, error) {
	uuidString := r.PathValue(pathParam)
	if uuidString == "" {
		return uuid.Nil, nil
	}
	parsedID, err := uuid.Parse(uuidString)
	if err != nil {
		return uuid.Nil, fmt.Errorf("value '%s' for path parameter '%s' could not be parsed as UUID: %w", uuidString, pathParam, err)
	}
	return parsedID, nil
}

// Try to parse input dateString according to available time layouts.
// Store time.Time{} into 'parse' on failure.
func parseDate(dateString string, parse *time.Time) error {
	if dateString == "" {
		*parse = time.Time{}
		return nil
	}

	var parsedDate time.Time
	var err error

	timeLayouts := []string{
		"2006-01-02",
	}

	for _, layout := range timeLayouts {
		parsedDate, err = time.Parse(layout, dateString)
		if err == nil {
			*parse = parsedDate
			return nil
		}
	}

	return fmt.Errorf("value '%s' could not be parsed as DATE", dateString)
}

// isFutureDate compares calendar days, not instants, so a planned date of
// tomorrow passes no matter the time of day the request lands.
func isFutureDate(date time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	candidate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return candidate.After(today)
}
