// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-gift/auth"
	"github.com/danielhkuo/quickly-gift/cliparse"
	"github.com/danielhkuo/quickly-gift/matcher"
	"github.com/danielhkuo/quickly-gift/middleware"
	"github.com/danielhkuo/quickly-gift/models"
	"github.com/danielhkuo/quickly-gift/roster"
)

type DrawHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	// newMatcher is swapped in tests to pin the seed
	newMatcher func() *matcher.Matcher
}

func NewDrawHandler(db *sql.DB, cfg cliparse.Config) *DrawHandler {
	return &DrawHandler{
		db:  db,
		cfg: cfg,
		newMatcher: func() *matcher.Matcher {
			return matcher.New(nil)
		},
	}
}

// CreateDraw handles POST /draws
func (h *DrawHandler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}

	// The roster is optional at creation time
	var participants []string
	var exclusions matcher.Exclusions
	hasRoster := len(req.Participants) > 0 || req.ParticipantsText != "" ||
		len(req.Exclusions) > 0 || req.ExclusionsText != ""
	if hasRoster {
		var err error
		participants, exclusions, err = parseRoster(req.Participants, req.Exclusions, req.ParticipantsText, req.ExclusionsText)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	drawID := auth.NewDrawID()
	adminKey := auth.GenerateAdminKey(drawID, h.cfg.AdminKeySalt)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO draw (id, title, creator_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, drawID, req.Title, req.CreatorName, models.StatusDraft, time.Now())
	if err != nil {
		slog.Error("failed to insert draw", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draw")
		return
	}

	if hasRoster {
		if err := replaceRoster(tx, drawID, participants, exclusions); err != nil {
			slog.Error("failed to store roster", "draw_id", drawID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draw")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draw")
		return
	}

	slog.Info("draw created", "draw_id", drawID, "creator", req.CreatorName, "participants", len(participants))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDrawResponse{
		DrawID:   drawID,
		AdminKey: adminKey,
	})
}

// UpdateRoster handles PUT /draws/:id/roster
// Replacing the roster voids any previous draw: codes are deleted and the
// draw goes back to draft.
func (h *DrawHandler) UpdateRoster(w http.ResponseWriter, r *http.Request) {
	drawID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.UpdateRosterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	participants, exclusions, err := parseRoster(req.Participants, req.Exclusions, req.ParticipantsText, req.ExclusionsText)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.rosterVersion(w, drawID); !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Bumping the version first locks the draw row and makes any draw in
	// flight against the old roster fail on save
	_, err = tx.Exec(`
		UPDATE draw
		SET status = $1, attempts = 0, drawn_at = NULL, roster_version = roster_version + 1
		WHERE id = $2
	`, models.StatusDraft, drawID)
	if err != nil {
		slog.Error("failed to reset draw", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}

	if err := replaceRoster(tx, drawID, participants, exclusions); err != nil {
		slog.Error("failed to replace roster", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}

	if _, err := tx.Exec(`DELETE FROM secret_code WHERE draw_id = $1`, drawID); err != nil {
		slog.Error("failed to clear codes", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}

	slog.Info("roster updated", "draw_id", drawID, "participants", len(participants))

	middleware.JSONResponse(w, http.StatusOK, models.UpdateRosterResponse{
		Participants: participants,
		Exclusions:   roster.FormatExclusions(exclusions),
	})
}

// GenerateDraw handles POST /draws/:id/generate
// Runs the matcher against the stored roster and replaces the code table
func (h *DrawHandler) GenerateDraw(w http.ResponseWriter, r *http.Request) {
	drawID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	// An empty body means "use the defaults"
	var req models.GenerateDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	maxAttempts := h.cfg.MaxAttempts
	if req.MaxAttempts != 0 {
		if req.MaxAttempts < 1 || req.MaxAttempts > cliparse.MaxAttemptsCap {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("max_attempts must be between 1 and %d", cliparse.MaxAttemptsCap))
			return
		}
		maxAttempts = req.MaxAttempts
	}

	// Read the version before the roster so a concurrent replacement can
	// only make the save fail, never pair a new version with an old roster
	version, ok := h.rosterVersion(w, drawID)
	if !ok {
		return
	}

	participants, exclusions, err := loadRoster(h.db, drawID)
	if err != nil {
		slog.Error("failed to load roster", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.newMatcher().GenerateAssignment(participants, exclusions, maxAttempts)
	switch {
	case errors.Is(err, matcher.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, matcher.ErrExhaustedRetries):
		slog.Warn("draw exhausted retries", "draw_id", drawID, "participants", len(participants), "max_attempts", maxAttempts)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("No valid assignment found in %d attempts; relax the exclusions or raise max_attempts", maxAttempts))
		return
	case err != nil:
		slog.Error("draw failed", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate draw")
		return
	}

	shareSlug := auth.GenerateShareSlug(drawID, h.cfg.DrawSlugSalt)
	drawnAt := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	err = saveDraw(tx, drawID, shareSlug, version, result, drawnAt)
	if errors.Is(err, errRosterChanged) {
		slog.Warn("roster changed during draw", "draw_id", drawID, "roster_version", version)
		middleware.ErrorResponse(w, http.StatusConflict, "The roster changed while drawing; generate again")
		return
	}
	if err != nil {
		slog.Error("failed to save draw", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save draw")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save draw")
		return
	}

	slog.Info("draw generated", "draw_id", drawID, "participants", len(participants), "attempts", result.Attempts)

	middleware.JSONResponse(w, http.StatusOK, models.GenerateDrawResponse{
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/draws/" + shareSlug,
		Attempts:  result.Attempts,
		DrawnAt:   drawnAt,
		Codes:     codeEntries(result.Codes),
	})
}

// GetDrawAdmin handles GET /draws/:id/admin
// Returns the full draw, including who gives to whom
func (h *DrawHandler) GetDrawAdmin(w http.ResponseWriter, r *http.Request) {
	drawID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	draw, err := scanDraw(h.db.QueryRow(`SELECT `+drawColumns+` FROM draw WHERE id = $1`, drawID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draw not found")
		return
	}
	if err != nil {
		slog.Error("failed to query draw", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participants, exclusions, err := loadRoster(h.db, drawID)
	if err != nil {
		slog.Error("failed to load roster", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	codes, err := loadCodes(h.db, drawID)
	if err != nil {
		slog.Error("failed to load codes", "draw_id", drawID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := models.DrawWithRoster{
		Draw:           draw,
		Participants:   participants,
		Exclusions:     exclusions,
		ExclusionsText: roster.FormatExclusions(exclusions),
		Codes:          codeEntries(codes),
	}
	if draw.DrawnAt != nil {
		response.DrawnAgo = humanize.Time(*draw.DrawnAt)
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// authorize checks the X-Admin-Key header against the draw ID in the path
func (h *DrawHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	drawID := r.PathValue("id")
	if drawID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draw_id is required")
		return "", false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(drawID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}

	return drawID, true
}

// rosterVersion reports the draw's current roster version, writing a 404 or
// 500 when it cannot be read
func (h *DrawHandler) rosterVersion(w http.ResponseWriter, drawID string) (int, bool) {
	var version int
	err := h.db.QueryRow("SELECT roster_version FROM draw WHERE id = $1", drawID).Scan(&version)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draw not found")
		return 0, false
	}
	if err != nil {
		slog.Error("failed to query draw", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return 0, false
	}
	return version, true
}
