// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from the config (lib/pq for postgres, modernc.org/sqlite
for sqlite) and pings before returning:

	conn, err := db.Open(cfg)

OpenSQLite(":memory:") is what the tests use.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL and SQLite.

# Tables

  - draw: Draw metadata, status (draft, drawn) and share slug
  - participant: Roster, ordered by seq
  - exclusion: Giver/receiver pairs that must not be matched
  - secret_code: Code table of the latest draw

# Relationships

	draw 1──* participant
	draw 1──* exclusion
	draw 1──* secret_code

All foreign keys use ON DELETE CASCADE. The code table of a draw is only ever
replaced as a whole, inside one transaction.
*/
package db
