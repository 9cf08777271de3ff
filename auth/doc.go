// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin gate and identifier generation.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(drawID, salt)
	err := auth.ValidateAdminKey(drawID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same draw ID and salt always produce the same key. This allows validation
without storing the key in the database.

The drawing itself never checks keys; handlers do, before calling into the
matcher.

# Share Slugs

Share slugs create URL-friendly identifiers for drawn events:

	slug := auth.GenerateShareSlug(drawID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Participants
use the slug plus their secret code to find their receiver.

# Draw IDs

	id := auth.NewDrawID() // UUIDv4

# IP Hashing

Failed code lookups are logged with a salted hash instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
