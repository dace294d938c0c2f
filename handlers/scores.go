package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/db"
	"github.com/yepeleya/jig-projet/metrics"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
	"github.com/yepeleya/jig-projet/scoring"
)

// scorer ties the aggregator to storage: it reads votes, computes, and
// writes the derived fields back.
type scorer struct {
	store *db.Store
	agg   *scoring.Aggregator
	cache *cache.RankingCache
}

func newScorer(conn *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) scorer {
	return scorer{
		store: db.NewStore(conn),
		agg:   scoring.MustNewAggregator(cfg.Weights, cfg.Scale),
		cache: rc,
	}
}

// live computes a project's score from its votes without persisting it.
func (s scorer) live(ctx context.Context, projectID string) (scoring.ScoreResult, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return scoring.ScoreResult{}, err
	}

	votes, err := s.store.FetchVotesForProject(ctx, projectID)
	if err != nil {
		return scoring.ScoreResult{}, err
	}

	return s.agg.ComputeProjectScore(projectID, votes)
}

// recomputeMu orders read-compute-write passes so a slow pass cannot
// overwrite the result of one that saw more votes.
var recomputeMu sync.Mutex

// recompute computes, persists and invalidates cached rankings.
func (s scorer) recompute(ctx context.Context, projectID string) (scoring.ScoreResult, error) {
	start := time.Now()
	defer func() { metrics.RecomputeDuration.Observe(time.Since(start).Seconds()) }()

	recomputeMu.Lock()
	defer recomputeMu.Unlock()

	result, err := s.live(ctx, projectID)
	if err != nil {
		return scoring.ScoreResult{}, err
	}

	if err := s.persist(ctx, result); err != nil {
		return scoring.ScoreResult{}, err
	}

	s.invalidate(ctx)
	return result, nil
}

func (s scorer) persist(ctx context.Context, result scoring.ScoreResult) error {
	return s.store.SaveProjectScore(ctx, result.ProjectID, result.FinalScore.InexactFloat64(), result.TotalVoteCount())
}

// all computes every project's score. Any invalid stored vote fails the
// whole pass.
func (s scorer) all(ctx context.Context) ([]models.Project, map[string]scoring.ScoreResult, error) {
	projects, err := s.store.FetchAllProjects(ctx)
	if err != nil {
		return nil, nil, err
	}

	votesByProject, err := s.store.FetchVotesByProject(ctx)
	if err != nil {
		return nil, nil, err
	}

	results := make(map[string]scoring.ScoreResult, len(projects))
	for _, p := range projects {
		result, err := s.agg.ComputeProjectScore(p.ID, votesByProject[p.ID])
		if err != nil {
			return nil, nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		results[p.ID] = result
	}

	return projects, results, nil
}

func (s scorer) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate ranking cache", "error", err)
	}
}

// writeScoreError maps scoring and storage errors to HTTP responses
func writeScoreError(w http.ResponseWriter, err error, projectID string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, scoring.ErrValidation):
		slog.Warn("stored votes failed validation", "project_id", projectID, "error", err)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("failed to compute score", "project_id", projectID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// requireAdmin writes a 401 and returns false unless X-Admin-Key matches
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// isUniqueViolation recognises duplicate key errors from both drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
