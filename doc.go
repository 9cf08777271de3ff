// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Gift API server.

Quickly Gift runs Secret Santa style gift exchanges. An admin enters a
roster and a list of pairs that must not be drawn, the server picks who
gives to whom, and every participant gets a two-digit secret code that
reveals only their own receiver.

# Starting the Server

Configuration comes from environment variables, an optional .env file or
CLI flags:

	DATABASE_URL=quickly-gift.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - DRAW_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_ATTEMPTS (-attempts): Matcher retry budget (default: 10)
  - BASE_URL (-base-url): Prefix for share links
  - IP_HASH_SALT (-ip-salt): Salt for client IP hashes in logs

# Architecture

  - matcher: Assignment and secret code generation
  - roster: Plain-text participant and exclusion parsing
  - handlers: HTTP request handlers (draws, lookup)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys, share slugs, IDs
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
