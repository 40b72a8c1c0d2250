// Package projection exposes the projection engine over HTTP.
package projection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"project_feasibility/pkg/core/loader"
	core "project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/report"
	"project_feasibility/pkg/core/store"
	"project_feasibility/pkg/core/validate"
	"project_feasibility/pkg/models"
)

// maxBody caps request bodies.
const maxBody = 4 << 20

// Handler serves the projection endpoints.
type Handler struct {
	engine *core.ProjectionEngine
	repo   *store.SnapshotRepo
}

// NewHandler creates a handler. repo may be nil, in which case the snapshot
// endpoints answer 503.
func NewHandler(engine *core.ProjectionEngine, repo *store.SnapshotRepo) *Handler {
	return &Handler{engine: engine, repo: repo}
}

// Routes mounts the endpoints under /api/projection.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/projection", func(r chi.Router) {
		r.Use(cors)
		r.Post("/compute", h.HandleCompute)
		r.Post("/validate", h.HandleValidate)
		r.Post("/report", h.HandleReport)
		r.Post("/snapshots", h.HandleSaveSnapshot)
		r.Get("/snapshots/{id}", h.HandleGetSnapshot)
		r.Get("/projects/{projectId}/latest", h.HandleLatest)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateResponse is the body of /validate.
type ValidateResponse struct {
	Format string           `json:"format"`
	Valid  bool             `json:"valid"`
	Report *validate.Report `json:"report"`
}

// HandleCompute runs one projection pass over the posted configuration.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.decode(w, r, "compute")
	if !ok {
		return
	}
	res := h.run(cfg)
	Computations.WithLabelValues("compute", "ok").Inc()
	writeJSON(w, http.StatusOK, res)
}

// HandleValidate checks the configuration without computing.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, format, ok := h.parseBody(w, r, "validate")
	if !ok {
		return
	}
	rep := validate.Config(cfg)
	Computations.WithLabelValues("validate", "ok").Inc()
	writeJSON(w, http.StatusOK, ValidateResponse{Format: string(format), Valid: !rep.HasErrors(), Report: rep})
}

// HandleReport computes and renders the tables as markdown (default) or html.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.decode(w, r, "report")
	if !ok {
		return
	}
	res := h.run(cfg)

	switch format := r.URL.Query().Get("format"); format {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.Markdown(res))
	case "html":
		out, err := report.HTML(res)
		if err != nil {
			Computations.WithLabelValues("report", "error").Inc()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, out)
	default:
		Computations.WithLabelValues("report", "bad_request").Inc()
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}
	Computations.WithLabelValues("report", "ok").Inc()
}

// HandleSaveSnapshot computes and persists the configuration with its result.
func (h *Handler) HandleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.hasStore(w) {
		return
	}
	cfg, ok := h.decode(w, r, "snapshot")
	if !ok {
		return
	}
	snap := &store.Snapshot{Config: cfg, Result: h.run(cfg)}
	if err := h.repo.Save(r.Context(), snap); err != nil {
		fmt.Printf("[API] save snapshot failed: %v\n", err)
		Computations.WithLabelValues("snapshot", "error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	Computations.WithLabelValues("snapshot", "ok").Inc()
	writeJSON(w, http.StatusCreated, snap)
}

// HandleGetSnapshot loads a snapshot by id.
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.hasStore(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid snapshot id", http.StatusBadRequest)
		return
	}
	snap, err := h.repo.Get(r.Context(), id)
	h.writeSnapshot(w, snap, err)
}

// HandleLatest returns the most recent snapshot of a project.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	if !h.hasStore(w) {
		return
	}
	snap, err := h.repo.Latest(r.Context(), chi.URLParam(r, "projectId"))
	h.writeSnapshot(w, snap, err)
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, snap *store.Snapshot, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		fmt.Printf("[API] load snapshot failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func (h *Handler) hasStore(w http.ResponseWriter) bool {
	if h.repo == nil {
		http.Error(w, "snapshot store not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// decode reads a project configuration in any format the loader accepts.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, endpoint string) (models.ProjectConfig, bool) {
	cfg, format, ok := h.parseBody(w, r, endpoint)
	if ok && format != loader.FormatJSON {
		fmt.Printf("[API] %s: body read as %s\n", endpoint, format)
	}
	return cfg, ok
}

func (h *Handler) parseBody(w http.ResponseWriter, r *http.Request, endpoint string) (models.ProjectConfig, loader.Format, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		Computations.WithLabelValues(endpoint, "bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return models.ProjectConfig{}, "", false
	}
	cfg, format, err := loader.Parse(string(body))
	if err != nil {
		Computations.WithLabelValues(endpoint, "bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return models.ProjectConfig{}, "", false
	}
	return cfg, format, true
}

func (h *Handler) run(cfg models.ProjectConfig) *core.Result {
	start := time.Now()
	res := h.engine.Run(cfg)
	ComputeDuration.Observe(time.Since(start).Seconds())

	issues := 0
	if res.Report != nil {
		issues = len(res.Report.Issues)
		for _, is := range res.Report.Issues {
			IssuesReported.WithLabelValues(string(is.Code)).Inc()
		}
	}
	fmt.Printf("[PROJECTION] %s: %d tables, %d issues\n", cfg.ProjectID, len(res.Tables), issues)
	return res
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[API] encode response failed: %v\n", err)
	}
}
