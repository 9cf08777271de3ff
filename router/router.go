// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-gift/cliparse"
	"github.com/danielhkuo/quickly-gift/handlers"
	"github.com/danielhkuo/quickly-gift/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	drawHandler := handlers.NewDrawHandler(db, cfg)
	lookupHandler := handlers.NewLookupHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Draw management (admin operations)
	mux.HandleFunc("POST /draws", middleware.WithLogging(drawHandler.CreateDraw))
	mux.HandleFunc("GET /draws/{id}/admin", middleware.WithLogging(drawHandler.GetDrawAdmin))
	mux.HandleFunc("PUT /draws/{id}/roster", middleware.WithLogging(drawHandler.UpdateRoster))
	mux.HandleFunc("POST /draws/{id}/generate", middleware.WithLogging(drawHandler.GenerateDraw))

	// Participant operations (public)
	mux.HandleFunc("GET /draws/{slug}", middleware.WithLogging(lookupHandler.GetDraw))
	mux.HandleFunc("POST /draws/{slug}/lookup", middleware.WithLogging(lookupHandler.Lookup))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-gift API v1"))
	})

	return mux
}
