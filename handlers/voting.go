package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/db"
	"github.com/yepeleya/jig-projet/metrics"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
)

type VotingHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	scores scorer
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, scores: newScorer(db, cfg, rc)}
}

// ClaimVoter handles POST /voters
func (h *VotingHandler) ClaimVoter(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if n := utf8.RuneCountInString(req.Username); n < 2 || n > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO voter_claim (voter_token, username, created_at)
		VALUES ($1, $2, $3)
	`, voterToken, req.Username, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert voter claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	slog.Info("username claimed", "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimVoterResponse{
		VoterToken: voterToken,
	})
}

// CastPublicVote handles POST /projects/{id}/votes/public
func (h *VotingHandler) CastPublicVote(w http.ResponseWriter, r *http.Request) {
	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM voter_claim WHERE voter_token = $1)
	`, voterToken).Scan(&exists)
	if err != nil {
		slog.Error("failed to verify voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	h.castVote(w, r, models.ClassPublic, voterToken, &ipHash)
}

// CastJuryVote handles POST /projects/{id}/votes/jury
func (h *VotingHandler) CastJuryVote(w http.ResponseWriter, r *http.Request) {
	juryID := r.Header.Get("X-Jury-ID")
	juryToken := r.Header.Get("X-Jury-Token")
	if juryID == "" || juryToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Jury-ID and X-Jury-Token headers required")
		return
	}

	if err := auth.ValidateJuryToken(juryID, juryToken, h.cfg.JuryTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid jury token")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM jury_member WHERE id = $1)
	`, juryID).Scan(&exists)
	if err != nil {
		slog.Error("failed to verify jury member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown jury member")
		return
	}

	h.castVote(w, r, models.ClassJury, juryID, nil)
}

// castVote stores one vote, then recomputes and persists the project score.
// Votes are immutable: a second vote by the same voter is a conflict.
// Once the vote is stored the answer is 201 even if the score cannot be
// recomputed; score is then omitted and a recompute reports the error.
func (h *VotingHandler) castVote(w http.ResponseWriter, r *http.Request, class, voterRef string, ipHash *string) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Value == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}
	value := *req.Value
	if math.IsNaN(value) || math.IsInf(value, 0) || !h.cfg.Scale.Contains(value) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("value must be between %g and %g", h.cfg.Scale.Min, h.cfg.Scale.Max))
		return
	}

	_, err := h.scores.store.GetProject(r.Context(), projectID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voteID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO vote (id, project_id, voter_class, voter_ref, value, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, voteID, projectID, class, voterRef, value, ipHash, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Already voted for this project")
			return
		}
		slog.Error("failed to insert vote", "error", err, "project_id", projectID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	metrics.VotesTotal.WithLabelValues(class).Inc()
	slog.Info("vote cast", "project_id", projectID, "vote_id", voteID, "class", class)

	resp := models.CastVoteResponse{VoteID: voteID}

	result, err := h.scores.recompute(r.Context(), projectID)
	if err != nil {
		slog.Warn("vote stored but score not recomputed", "project_id", projectID, "vote_id", voteID, "error", err)
		h.scores.invalidate(r.Context())
	} else {
		view := result.Display()
		resp.Score = &view
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}
