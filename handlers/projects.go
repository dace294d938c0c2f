package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/db"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
)

type ProjectHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	scores scorer
}

func NewProjectHandler(db *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) *ProjectHandler {
	return &ProjectHandler{db: db, cfg: cfg, scores: newScorer(db, cfg, rc)}
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	projectID := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO project (id, title, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, projectID, req.Title, req.Category, req.Description, time.Now())
	if err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	// A new project changes both rankings
	h.scores.invalidate(r.Context())

	slog.Info("project created", "project_id", projectID, "category", req.Category)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		ProjectID: projectID,
	})
}

// ListProjects handles GET /projects
// Scores are the stored values from the last recomputation.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.scores.store.FetchAllProjects(r.Context())
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListProjectsResponse{Projects: projects})
}

// GetProject handles GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	project, err := h.scores.store.GetProject(r.Context(), projectID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.scores.live(r.Context(), projectID)
	if err != nil {
		writeScoreError(w, err, projectID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProjectWithScore{
		Project: project,
		Score:   result.Display(),
	})
}

// DeleteProject handles DELETE /projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Votes first so SQLite without foreign key enforcement stays consistent
	if _, err := tx.Exec(`DELETE FROM vote WHERE project_id = $1`, projectID); err != nil {
		slog.Error("failed to delete votes", "error", err, "project_id", projectID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	res, err := tx.Exec(`DELETE FROM project WHERE id = $1`, projectID)
	if err != nil {
		slog.Error("failed to delete project", "error", err, "project_id", projectID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	h.scores.invalidate(r.Context())

	slog.Info("project deleted", "project_id", projectID)

	w.WriteHeader(http.StatusNoContent)
}
