package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/models"
)

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a saved configuration together with the result computed from it.
type Snapshot struct {
	ID        uuid.UUID            `json:"id"`
	ProjectID string               `json:"projectId"`
	Config    models.ProjectConfig `json:"config"`
	Result    *projection.Result   `json:"result"`
	CreatedAt time.Time            `json:"createdAt"`
}

// SnapshotRepo persists snapshots in Postgres when a pool is given, or as
// JSON files under a directory otherwise.
type SnapshotRepo struct {
	pool    *pgxpool.Pool
	fileDir string
	now     func() time.Time
}

// NewSnapshotRepo creates a repository. With a nil pool and empty dir it
// defaults to .cache/snapshots.
func NewSnapshotRepo(pool *pgxpool.Pool, dir string) *SnapshotRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "snapshots")
	}
	if pool == nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] snapshot dir %s: %v\n", dir, err)
		}
	}
	return &SnapshotRepo{pool: pool, fileDir: dir, now: time.Now}
}

// Backend names the storage in use.
func (r *SnapshotRepo) Backend() string {
	if r.pool != nil {
		return "postgres"
	}
	return "file"
}

// Save assigns an id and timestamp when missing and stores the snapshot.
func (r *SnapshotRepo) Save(ctx context.Context, s *Snapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now().UTC()
	}
	if s.ProjectID == "" {
		s.ProjectID = s.Config.ProjectID
	}

	if r.pool != nil {
		return r.saveDB(ctx, s)
	}
	return r.saveFile(s)
}

// Get loads a snapshot by id.
func (r *SnapshotRepo) Get(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	if r.pool != nil {
		query := `
			SELECT id, project_id, config, result, created_at
			FROM projection_snapshots
			WHERE id = $1
		`
		return r.scanOne(r.pool.QueryRow(ctx, query, id))
	}

	s, err := r.loadFile(r.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return s, err
}

// Latest returns the most recent snapshot of a project.
func (r *SnapshotRepo) Latest(ctx context.Context, projectID string) (*Snapshot, error) {
	if r.pool != nil {
		query := `
			SELECT id, project_id, config, result, created_at
			FROM projection_snapshots
			WHERE project_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		`
		return r.scanOne(r.pool.QueryRow(ctx, query, projectID))
	}
	return r.scanFiles(projectID)
}

// =============================================================================
// POSTGRES
// =============================================================================

func (r *SnapshotRepo) saveDB(ctx context.Context, s *Snapshot) error {
	cfgJSON, err := json.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	resJSON, err := json.Marshal(s.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO projection_snapshots (id, project_id, config, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			config = EXCLUDED.config,
			result = EXCLUDED.result
	`
	if _, err := r.pool.Exec(ctx, query, s.ID, s.ProjectID, cfgJSON, resJSON, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.ID, err)
	}
	fmt.Printf("[STORE] saved snapshot %s for %s\n", s.ID, s.ProjectID)
	return nil
}

func (r *SnapshotRepo) scanOne(row pgx.Row) (*Snapshot, error) {
	var (
		s       Snapshot
		cfgJSON []byte
		resJSON []byte
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &cfgJSON, &resJSON, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err := json.Unmarshal(cfgJSON, &s.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot config: %w", err)
	}
	if err := json.Unmarshal(resJSON, &s.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot result: %w", err)
	}
	return &s, nil
}

// =============================================================================
// FILES
// =============================================================================

func (r *SnapshotRepo) path(id uuid.UUID) string {
	return filepath.Join(r.fileDir, id.String()+".json")
}

func (r *SnapshotRepo) saveFile(s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(r.path(s.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to save snapshot file: %w", err)
	}
	fmt.Printf("[STORE] saved snapshot %s for %s\n", s.ID, s.ProjectID)
	return nil
}

func (r *SnapshotRepo) loadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
	}
	return &s, nil
}

func (r *SnapshotRepo) scanFiles(projectID string) (*Snapshot, error) {
	entries, err := os.ReadDir(r.fileDir)
	if err != nil {
		return nil, ErrNotFound
	}

	var latest *Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := r.loadFile(filepath.Join(r.fileDir, e.Name()))
		if err != nil {
			fmt.Printf("[STORE] skipping %s: %v\n", e.Name(), err)
			continue
		}
		if s.ProjectID != projectID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}
