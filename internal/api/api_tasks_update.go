package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yachay/tareas-api/internal/database"
)

// taskPatch is the typed partial-update payload: nil fields were not
// supplied and leave the stored value untouched.
type taskPatch struct {
	Text           *string    `json:"text"`
	EndPlannedDate *string    `json:"end_planned_date"`
	State          *int32     `json:"state"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

func (cfg *APIConfig) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	pathTaskID, err := parseUUIDFromPath("task_id", r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "", err)
		return
	}

	patch, err := decodePayload[taskPatch](r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "", err)
		return
	}

	dbTask, ok := cfg.loadOwnedTask(w, r, pathTaskID)
	if !ok {
		return
	}

	params := database.UpdateTaskParams{
		ID:             dbTask.ID,
		Text:           dbTask.Text,
		EndPlannedDate: dbTask.EndPlannedDate,
		State:          dbTask.State,
		CategoryID:     dbTask.CategoryID,
	}

	if patch.Text != nil {
		if *patch.Text == "" {
			respondWithError(w, http.StatusBadRequest, "text not provided", nil)
			return
		}
		params.Text = *patch.Text
	}
	if patch.EndPlannedDate != nil {
		// a supplied field must carry a value; parseDate maps "" to the
		// zero time, which must not overwrite the stored date
		var plannedDate time.Time
		if err := parseDate(*patch.EndPlannedDate, &plannedDate); err != nil || plannedDate.IsZero() {
			respondWithError(w, http.StatusBadRequest, "invalid end_planned_date", err)
			return
		}
		params.EndPlannedDate = plannedDate
	}
	if patch.State != nil {
		state, err := TaskStateFromInt(*patch.State)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "state must be 1 (new), 2 (started) or 3 (ended)", err)
			return
		}
		params.State = int32(state)
	}
	if patch.CategoryID != nil {
		params.CategoryID = *patch.CategoryID
	}

	if _, err := cfg.db.UpdateTask(r.Context(), params); err != nil {
		if database.IsForeignKeyViolation(err) {
			respondWithError(w, http.StatusBadRequest, "category does not exist", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not update task", err)
		return
	}

	respondWithText(w, http.StatusOK, "task updated")
}

func (cfg *APIConfig) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	pathTaskID, err := parseUUIDFromPath("task_id", r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "", err)
		return
	}

	dbTask, ok := cfg.loadOwnedTask(w, r, pathTaskID)
	if !ok {
		return
	}

	if err := cfg.db.DeleteTaskByID(r.Context(), dbTask.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not delete task", err)
		return
	}

	respondWithText(w, http.StatusOK, "task deleted")
}

// loadOwnedTask fetches the task and checks it belongs to the caller.
// A task owned by someone else answers 404, same as an unknown id, so
// foreign task ids are not distinguishable from nonexistent ones.
func (cfg *APIConfig) loadOwnedTask(w http.ResponseWriter, r *http.Request, taskID uuid.UUID) (database.Task, bool) {
	validatedUserID := getContextKeyValueAsUUID(r.Context(), "user_id")

	dbTask, err := cfg.db.GetTaskByID(r.Context(), taskID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "task not found", err)
		return database.Task{}, false
	}
	if dbTask.UserID != validatedUserID {
		slog.Warn("user attempted to access a task they do not own",
			slog.String("user_id", validatedUserID.String()),
			slog.String("task_id", taskID.String()))
		respondWithError(w, http.StatusNotFound, "task not found", nil)
		return database.Task{}, false
	}
	return dbTask, true
}
