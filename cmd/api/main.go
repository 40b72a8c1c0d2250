package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apiProjection "project_feasibility/pkg/api/projection"
	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/settings"
	"project_feasibility/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := settings.Load(settings.DefaultPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	// Postgres when DATABASE_URL is set, JSON files otherwise
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] %v; snapshots stored under %s\n", err, cfg.Store.SnapshotDir)
	}
	cancel()
	defer store.Close()
	repo := store.NewSnapshotRepo(store.GetPool(), cfg.Store.SnapshotDir)
	fmt.Printf("[STORE] snapshot backend: %s\n", repo.Backend())

	engine := projection.NewProjectionEngine(cfg.ProjectionDefaults())
	handler := apiProjection.NewHandler(engine, repo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	handler.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	fmt.Printf("Server starting on %s...\n", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal(err)
	}
}
