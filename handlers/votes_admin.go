package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
)

type VoteAdminHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	scores scorer
}

func NewVoteAdminHandler(db *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) *VoteAdminHandler {
	return &VoteAdminHandler{db: db, cfg: cfg, scores: newScorer(db, cfg, rc)}
}

// ListVotes handles GET /admin/votes?project_id=
func (h *VoteAdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	query := `
		SELECT id, project_id, voter_class, voter_ref, value, ip_hash, created_at
		FROM vote
	`
	var args []interface{}
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		query += " WHERE project_id = $1"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at, id"

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.VoterClass, &v.VoterRef, &v.Value, &v.IPHash, &v.CreatedAt); err != nil {
			slog.Error("failed to scan vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListVotesResponse{Votes: votes})
}

// DeleteVote handles DELETE /admin/votes/{id}
// Returns the project's score after the vote is removed.
func (h *VoteAdminHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var projectID string
	err := h.db.QueryRow(`SELECT project_id FROM vote WHERE id = $1`, voteID).Scan(&projectID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM vote WHERE id = $1`, voteID); err != nil {
		slog.Error("failed to delete vote", "error", err, "vote_id", voteID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete vote")
		return
	}

	slog.Info("vote deleted", "vote_id", voteID, "project_id", projectID)

	result, err := h.scores.recompute(r.Context(), projectID)
	if err != nil {
		writeScoreError(w, err, projectID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result.Display())
}
