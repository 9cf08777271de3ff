// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateDrawRequest: title, creator_name, optional roster
  - UpdateRosterRequest: participants and exclusions, structured or as text
  - GenerateDrawRequest: max_attempts
  - LookupRequest: code

Rosters can be sent structured:

	{"participants": ["Alice", "Bob"], "exclusions": {"Alice": ["Bob"]}}

or as the text an admin would paste:

	{"participants_text": "Alice, Bob", "exclusions_text": "Alice: [Bob]"}

# Response Types

  - CreateDrawResponse: draw_id, admin_key
  - UpdateRosterResponse: normalized roster
  - GenerateDrawResponse: share_slug, share_url, attempts, codes
  - LookupResponse: code, giver, receiver
  - ErrorResponse: error, message

# Domain Types

  - Draw: draw metadata and status
  - CodeEntry: one row of the secret code table
  - DrawWithRoster: admin view including the code table
  - PublicDraw: public view, no mapping

# Constants

Status values:

	StatusDraft = "draft"
	StatusDrawn = "drawn"
*/
package models
