package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/middleware"
	"github.com/yepeleya/jig-projet/models"
)

type JuryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewJuryHandler(db *sql.DB, cfg cliparse.Config) *JuryHandler {
	return &JuryHandler{db: db, cfg: cfg}
}

// CreateJuryMember handles POST /jury
// The returned token is derived from the juror ID and is not stored.
func (h *JuryHandler) CreateJuryMember(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreateJuryMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	juryID := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO jury_member (id, name, created_at)
		VALUES ($1, $2, $3)
	`, juryID, req.Name, time.Now())
	if err != nil {
		slog.Error("failed to insert jury member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create jury member")
		return
	}

	slog.Info("jury member created", "jury_id", juryID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateJuryMemberResponse{
		JuryID:    juryID,
		JuryToken: auth.GenerateJuryToken(juryID, h.cfg.JuryTokenSalt),
	})
}

// ListJury handles GET /jury
func (h *JuryHandler) ListJury(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, created_at
		FROM jury_member
		ORDER BY created_at, id
	`)
	if err != nil {
		slog.Error("failed to query jury members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	members := []models.JuryMember{}
	for rows.Next() {
		var m models.JuryMember
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			slog.Error("failed to scan jury member", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate jury members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListJuryResponse{Members: members})
}
