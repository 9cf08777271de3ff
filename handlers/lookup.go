// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-gift/auth"
	"github.com/danielhkuo/quickly-gift/cliparse"
	"github.com/danielhkuo/quickly-gift/matcher"
	"github.com/danielhkuo/quickly-gift/middleware"
	"github.com/danielhkuo/quickly-gift/models"
)

type LookupHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLookupHandler(db *sql.DB, cfg cliparse.Config) *LookupHandler {
	return &LookupHandler{db: db, cfg: cfg}
}

// GetDraw handles GET /draws/:slug
// Returns public draw info, never the mapping
func (h *LookupHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var drawID string
	var draw models.PublicDraw
	err := h.db.QueryRow(`
		SELECT id, title, status, drawn_at FROM draw WHERE share_slug = $1
	`, shareSlug).Scan(&drawID, &draw.Title, &draw.Status, &draw.DrawnAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draw not found")
		return
	}
	if err != nil {
		slog.Error("failed to query draw", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participants, _, err := loadRoster(h.db, drawID)
	if err != nil {
		slog.Error("failed to load roster", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	draw.Participants = participants

	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM secret_code WHERE draw_id = $1
	`, drawID).Scan(&draw.CodeCount)
	if err != nil {
		slog.Error("failed to count codes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, draw)
}

// Lookup handles POST /draws/:slug/lookup
// A participant trades their secret code for the name they give to
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.LookupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	var drawID, status string
	err := h.db.QueryRow(`
		SELECT id, status FROM draw WHERE share_slug = $1
	`, shareSlug).Scan(&drawID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draw not found")
		return
	}
	if err != nil {
		slog.Error("failed to query draw", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDrawn {
		middleware.ErrorResponse(w, http.StatusConflict, "The draw has not been generated yet")
		return
	}

	// Read the whole table, then look the code up in memory
	codes, err := loadCodes(h.db, drawID)
	if err != nil {
		slog.Error("failed to load codes", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pair, found := matcher.Lookup(codes, req.Code)
	if !found {
		slog.Warn("secret code not found",
			"draw_id", drawID,
			"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		)
		middleware.ErrorResponse(w, http.StatusNotFound, "Secret code not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LookupResponse{
		Code:     matcher.NormalizeCode(req.Code),
		Giver:    pair.Giver,
		Receiver: pair.Receiver,
	})
}
