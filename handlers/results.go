package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
	"github.com/yepeleya/jig-projet/scoring"
)

type ResultsHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	scores scorer
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, scores: newScorer(db, cfg, rc)}
}

// GetScore handles GET /projects/{id}/score
// Computed live from the votes; nothing is written.
func (h *ResultsHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	result, err := h.scores.live(r.Context(), projectID)
	if err != nil {
		writeScoreError(w, err, projectID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result.Display())
}

// GetClassement handles GET /classement?mode=final|popular
func (h *ResultsHandler) GetClassement(w http.ResponseWriter, r *http.Request) {
	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cached, err := h.scores.cache.Get(r.Context(), mode)
	if err != nil {
		slog.Warn("failed to read ranking cache", "error", err, "mode", mode)
	}
	if cached != nil {
		middleware.JSONRaw(w, http.StatusOK, cached)
		return
	}

	// Read before the votes so an invalidation during the computation is seen
	gen, genErr := h.scores.cache.Generation(r.Context())
	if genErr != nil {
		slog.Warn("failed to read ranking cache generation", "error", genErr)
	}

	projects, results, err := h.scores.all(r.Context())
	if err != nil {
		writeScoreError(w, err, "")
		return
	}

	input := make([]scoring.Project, len(projects))
	for i, p := range projects {
		input[i] = p.Scoring()
	}

	ranked, err := h.scores.agg.RankProjects(input, results, mode)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	response := models.ClassementResponse{
		Mode:     string(mode),
		Rankings: make([]models.RankedProjectView, len(ranked)),
	}
	for i, rp := range ranked {
		response.Rankings[i] = models.RankedProjectView{
			Rank:      rp.Rank,
			RankLabel: humanize.Ordinal(rp.Rank),
			ProjectID: rp.Project.ID,
			Title:     rp.Project.Title,
			Category:  rp.Project.Category,
			Score:     rp.Score.Display(),
		}
	}

	if genErr == nil {
		switch err := h.scores.cache.Set(r.Context(), mode, response, gen); {
		case errors.Is(err, cache.ErrStale):
			slog.Debug("ranking changed while computing, not cached", "mode", mode)
		case err != nil:
			slog.Warn("failed to write ranking cache", "error", err, "mode", mode)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// Recompute handles POST /projects/{id}/recompute
func (h *ResultsHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !requireAdmin(w, r, h.cfg) {
		return
	}

	result, err := h.scores.recompute(r.Context(), projectID)
	if err != nil {
		writeScoreError(w, err, projectID)
		return
	}

	slog.Info("project score recomputed", "project_id", projectID, "final_score", result.FinalScore.String())

	middleware.JSONResponse(w, http.StatusOK, result.Display())
}

// RecomputeAll handles POST /admin/recompute
// Every project is validated before anything is written.
func (h *ResultsHandler) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	recomputeMu.Lock()
	defer recomputeMu.Unlock()

	projects, results, err := h.scores.all(r.Context())
	if err != nil {
		writeScoreError(w, err, "")
		return
	}

	for _, p := range projects {
		if err := h.scores.persist(r.Context(), results[p.ID]); err != nil {
			writeScoreError(w, err, p.ID)
			return
		}
	}
	h.scores.invalidate(r.Context())

	slog.Info("all project scores recomputed", "count", len(projects))

	middleware.JSONResponse(w, http.StatusOK, models.RecomputeAllResponse{Recomputed: len(projects)})
}

// GetStats handles GET /admin/stats
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	projects, results, err := h.scores.all(r.Context())
	if err != nil {
		writeScoreError(w, err, "")
		return
	}

	list := make([]scoring.ScoreResult, 0, len(projects))
	for _, p := range projects {
		list = append(list, results[p.ID])
	}

	middleware.JSONResponse(w, http.StatusOK, h.scores.agg.Summarize(list))
}

// GetScoringConfig handles GET /scoring
func (h *ResultsHandler) GetScoringConfig(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ScoringConfigResponse{
		Weights: h.scores.agg.Weights(),
		Scale:   h.scores.agg.Scale(),
	})
}

