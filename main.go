package main

import (
	"embed"
	"log"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"github.com/yachay/tareas-api/internal/api"
)

//go:embed sql/schema/*.sql
var migrationsFS embed.FS

func main() {
	cfg := &api.APIConfig{}
	cfg.Init(".env", "")
	cfg.ConnectToDB(migrationsFS, "sql/schema")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	tareas := &http.Server{
		Addr:    ":" + port,
		Handler: api.SetupMux(cfg),
	}

	// start server
	log.Fatal(tareas.ListenAndServe())
}
