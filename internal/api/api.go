// Package api handles routes and their associated handlers
package api

import (
	"net/http"
)

func SetupMux(cfg *APIConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// middleware
	mdAuth := cfg.middlewareAuthenticate

	// REGISTER API HANDLERS
	// ======================

	// Admin & State
	mux.HandleFunc("GET /api/healthz", cfg.handleReadiness)
	mux.HandleFunc("POST /admin/reset", cfg.handleDeleteAllUsers)
	mux.HandleFunc("GET /admin/users/count", cfg.handleGetTotalUserCount)
	// User registration & login
	mux.HandleFunc("POST /usuarios", cfg.handleCreateUser)
	mux.HandleFunc("POST /usuarios/iniciar-sesion", cfg.handleLoginUser)
	// Categories
	mux.HandleFunc("POST /categorias", mdAuth(cfg.handleCreateCategory))
	mux.HandleFunc("GET /categorias", cfg.handleGetCategories)
	mux.HandleFunc("DELETE /categorias/{category_id}", mdAuth(cfg.handleDeleteCategory))
	// Tasks
	mux.HandleFunc("POST /tareas", mdAuth(cfg.handleCreateTask))
	mux.HandleFunc("GET /tareas", mdAuth(cfg.handleGetTasks))
	mux.HandleFunc("PUT /tareas/{task_id}", mdAuth(cfg.handleUpdateTask))
	mux.HandleFunc("DELETE /tareas/{task_id}", mdAuth(cfg.handleDeleteTask))

	return mux
}
