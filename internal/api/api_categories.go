package api

import (
	"net/http"
	"strings"

	"github.com/yachay/tareas-api/internal/database"
)

func (cfg *APIConfig) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "", err)
		return
	}

	name := strings.TrimSpace(rqPayload.Name)
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "name not provided", nil)
		return
	}

	dbCategory, err := cfg.db.CreateCategory(r.Context(), database.CreateCategoryParams{
		Name:        name,
		Description: rqPayload.Description,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			respondWithError(w, http.StatusBadRequest, "category already exists", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not create category", err)
		return
	}

	rspPayload := Category{
		ID:          dbCategory.ID,
		CreatedAt:   dbCategory.CreatedAt,
		UpdatedAt:   dbCategory.UpdatedAt,
		Name:        dbCategory.Name,
		Description: dbCategory.Description,
	}

	respondWithJSON(w, http.StatusOK, rspPayload)
}

func (cfg *APIConfig) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := cfg.db.GetCategories(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not retrieve categories", err)
		return
	}

	rspPayload := []Category{}
	for _, category := range categories {
		rspPayload = append(rspPayload, Category{
			ID:          category.ID,
			CreatedAt:   category.CreatedAt,
			UpdatedAt:   category.UpdatedAt,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	respondWithJSON(w, http.StatusOK, rspPayload)
}

func (cfg *APIConfig) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	pathCategoryID, err := parseUUIDFromPath("category_id", r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "", err)
		return
	}

	if _, err := cfg.db.GetCategoryByID(r.Context(), pathCategoryID); err != nil {
		respondWithError(w, http.StatusNotFound, "could not get category", err)
		return
	}

	if err := cfg.db.DeleteCategoryByID(r.Context(), pathCategoryID); err != nil {
		if database.IsForeignKeyViolation(err) {
			respondWithError(w, http.StatusBadRequest, "tasks still reference this category", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not delete category", err)
		return
	}

	respondWithText(w, http.StatusOK, "category deleted")
}
