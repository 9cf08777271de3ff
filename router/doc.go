// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Gift API.

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Draw management (admin, requires X-Admin-Key):

	POST /draws               - Create draw, optionally with a roster
	GET  /draws/{id}/admin    - Full draw including the code table
	PUT  /draws/{id}/roster   - Replace participants and exclusions
	POST /draws/{id}/generate - Run the matcher and store new codes

Participants (public, uses share slug):

	GET  /draws/{slug}        - Title, status and participant names
	POST /draws/{slug}/lookup - Trade a secret code for a receiver

Every draw route is wrapped in middleware.WithLogging.
*/
package router
