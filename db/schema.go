// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types both PostgreSQL and SQLite accept.
const schema = `
-- Draws
CREATE TABLE IF NOT EXISTS draw (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    creator_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'drawn')),
    share_slug TEXT UNIQUE,
    attempts INTEGER NOT NULL DEFAULT 0,
    roster_version INTEGER NOT NULL DEFAULT 0,
    drawn_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_draw_share_slug ON draw(share_slug);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    draw_id TEXT NOT NULL REFERENCES draw(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    seq INTEGER NOT NULL,
    PRIMARY KEY (draw_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_draw_id ON participant(draw_id);

-- Exclusions (giver must not receive receiver)
CREATE TABLE IF NOT EXISTS exclusion (
    draw_id TEXT NOT NULL REFERENCES draw(id) ON DELETE CASCADE,
    giver TEXT NOT NULL,
    receiver TEXT NOT NULL,
    PRIMARY KEY (draw_id, giver, receiver)
);

-- Secret codes
CREATE TABLE IF NOT EXISTS secret_code (
    draw_id TEXT NOT NULL REFERENCES draw(id) ON DELETE CASCADE,
    code TEXT NOT NULL CHECK (length(code) = 2),
    giver TEXT NOT NULL,
    receiver TEXT NOT NULL,
    PRIMARY KEY (draw_id, code),
    UNIQUE (draw_id, giver)
);
`
