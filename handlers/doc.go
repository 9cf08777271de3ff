// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Gift API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - DrawHandler: Draw lifecycle (create, roster, generate, admin view)
  - LookupHandler: Public draw info and secret code lookup

	drawHandler := handlers.NewDrawHandler(db, cfg)

# Draw Lifecycle

Draws move between two states: draft and drawn.

	POST /draws               → CreateDraw (returns admin_key)
	PUT  /draws/{id}/roster   → UpdateRoster (back to draft, codes dropped)
	POST /draws/{id}/generate → GenerateDraw (drawn, share_slug assigned)

Generating again replaces the whole code table in one transaction, so a
lookup sees either the old table or the new one. Admin operations require
the X-Admin-Key header.

# Lookup

	GET  /draws/{slug}        → GetDraw
	POST /draws/{slug}/lookup → Lookup

Lookup reads the draw's full code table and resolves the code in memory
with matcher.Lookup. Unknown codes return 404 and are logged with a salted
hash of the client IP.
*/
package handlers
