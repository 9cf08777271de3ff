// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - DrawSlugSalt: Secret for share slug generation (required)
  - MaxAttempts: Default retry budget per draw (default: 10)
  - BaseURL: Public base URL for share links
  - IPHashSalt: Salt for client IP hashes in logs (default: DrawSlugSalt)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-attempts    Retry budget per draw
	-base-url    Public base URL
	-admin-salt  Admin key salt
	-slug-salt   Draw slug salt
	-ip-salt     IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	MAX_ATTEMPTS   → -attempts
	BASE_URL       → -base-url
	ADMIN_KEY_SALT → -admin-salt
	DRAW_SLUG_SALT → -slug-salt
	IP_HASH_SALT   → -ip-salt

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if required values are missing or out of range:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - MAX_ATTEMPTS must be between 1 and MaxAttemptsCap
  - ADMIN_KEY_SALT must be provided
  - DRAW_SLUG_SALT must be provided
*/
package cliparse
