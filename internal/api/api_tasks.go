package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yachay/tareas-api/internal/database"
)

func (cfg *APIConfig) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Text           string    `json:"text"`
		EndPlannedDate string    `json:"end_planned_date"`
		State          int32     `json:"state"`
		CategoryID     uuid.UUID `json:"category_id"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "", err)
		return
	}

	if rqPayload.Text == "" {
		respondWithError(w, http.StatusBadRequest, "text not provided", nil)
		return
	}

	state, err := TaskStateFromInt(rqPayload.State)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "state must be 1 (new), 2 (started) or 3 (ended)", err)
		return
	}

	var plannedDate time.Time
	if err := parseDate(rqPayload.EndPlannedDate, &plannedDate); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid end_planned_date", err)
		return
	}
	if !isFutureDate(plannedDate, time.Now()) {
		respondWithError(w, http.StatusBadRequest, "end_planned_date must be in the future", nil)
		return
	}

	// user_id always comes from the validated token, never the payload
	validatedUserID := getContextKeyValueAsUUID(r.Context(), "user_id")

	dbTask, err := cfg.db.CreateTask(r.Context(), database.CreateTaskParams{
		Text:           rqPayload.Text,
		EndPlannedDate: plannedDate,
		State:          int32(state),
		CategoryID:     rqPayload.CategoryID,
		UserID:         validatedUserID,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			respondWithError(w, http.StatusBadRequest, "category does not exist", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not create task", err)
		return
	}

	respondWithJSON(w, http.StatusOK, taskResponse(dbTask))
}

func (cfg *APIConfig) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	validatedUserID := getContextKeyValueAsUUID(r.Context(), "user_id")

	tasks, err := cfg.db.GetTasksByUserID(r.Context(), validatedUserID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not retrieve tasks", err)
		return
	}

	rspPayload := []Task{}
	for _, task := range tasks {
		rspPayload = append(rspPayload, taskResponse(task))
	}

	respondWithJSON(w, http.StatusOK, rspPayload)
}

func taskResponse(dbTask database.Task) Task {
	return Task{
		ID:             dbTask.ID,
		CreationDate:   dbTask.CreatedAt,
		UpdatedAt:      dbTask.UpdatedAt,
		Text:           dbTask.Text,
		EndPlannedDate: Date{dbTask.EndPlannedDate},
		State:          TaskState(dbTask.State),
		CategoryID:     dbTask.CategoryID,
		UserID:         dbTask.UserID,
	}
}
