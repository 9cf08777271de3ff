// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-gift/matcher"
	"github.com/danielhkuo/quickly-gift/models"
	"github.com/danielhkuo/quickly-gift/roster"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// errRosterChanged means the roster was replaced after it was read for a draw
var errRosterChanged = errors.New("roster changed during draw")

const drawColumns = `id, title, creator_name, status, share_slug, attempts, drawn_at, created_at`

func scanDraw(row *sql.Row) (models.Draw, error) {
	var d models.Draw
	err := row.Scan(
		&d.ID, &d.Title, &d.CreatorName, &d.Status,
		&d.ShareSlug, &d.Attempts, &d.DrawnAt, &d.CreatedAt,
	)
	return d, err
}

// parseRoster merges the structured and text forms of a roster and validates
// it. Structured fields win when both are set.
func parseRoster(participants []string, exclusions map[string][]string, participantsText, exclusionsText string) ([]string, matcher.Exclusions, error) {
	if len(participants) == 0 && participantsText != "" {
		participants = roster.ParseParticipants(participantsText)
	}

	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, strings.TrimSpace(p))
	}
	if err := matcher.ValidateParticipants(names); err != nil {
		return nil, nil, err
	}

	ex := matcher.Exclusions(exclusions)
	if len(ex) == 0 && exclusionsText != "" {
		parsed, err := roster.ParseExclusions(exclusionsText)
		if err != nil {
			return nil, nil, err
		}
		ex = parsed
	}

	return names, normalizeExclusions(ex), nil
}

// normalizeExclusions trims names and drops blanks and repeats. Names that
// are not participants are kept; the matcher ignores them.
func normalizeExclusions(exclusions matcher.Exclusions) matcher.Exclusions {
	out := make(matcher.Exclusions, len(exclusions))
	for giver, receivers := range exclusions {
		giver = strings.TrimSpace(giver)
		if giver == "" {
			continue
		}
		seen := make(map[string]bool, len(out[giver])+len(receivers))
		for _, r := range out[giver] {
			seen[r] = true
		}
		for _, r := range receivers {
			r = strings.TrimSpace(r)
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			out[giver] = append(out[giver], r)
		}
	}
	return out
}

// replaceRoster swaps the stored roster of a draw for a new one
func replaceRoster(tx execer, drawID string, participants []string, exclusions matcher.Exclusions) error {
	if _, err := tx.Exec(`DELETE FROM participant WHERE draw_id = $1`, drawID); err != nil {
		return fmt.Errorf("clear participants: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM exclusion WHERE draw_id = $1`, drawID); err != nil {
		return fmt.Errorf("clear exclusions: %w", err)
	}

	for i, name := range participants {
		_, err := tx.Exec(`
			INSERT INTO participant (draw_id, name, seq)
			VALUES ($1, $2, $3)
		`, drawID, name, i)
		if err != nil {
			return fmt.Errorf("insert participant %q: %w", name, err)
		}
	}

	for giver, receivers := range exclusions {
		for _, receiver := range receivers {
			_, err := tx.Exec(`
				INSERT INTO exclusion (draw_id, giver, receiver)
				VALUES ($1, $2, $3)
			`, drawID, giver, receiver)
			if err != nil {
				return fmt.Errorf("insert exclusion %s -> %s: %w", giver, receiver, err)
			}
		}
	}

	return nil
}

// loadRoster retrieves participants in their original order plus exclusions
func loadRoster(q queryer, drawID string) ([]string, matcher.Exclusions, error) {
	rows, err := q.Query(`
		SELECT name FROM participant WHERE draw_id = $1 ORDER BY seq
	`, drawID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	participants := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, err
		}
		participants = append(participants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	exRows, err := q.Query(`
		SELECT giver, receiver FROM exclusion WHERE draw_id = $1 ORDER BY giver, receiver
	`, drawID)
	if err != nil {
		return nil, nil, err
	}
	defer exRows.Close()

	exclusions := matcher.Exclusions{}
	for exRows.Next() {
		var giver, receiver string
		if err := exRows.Scan(&giver, &receiver); err != nil {
			return nil, nil, err
		}
		exclusions[giver] = append(exclusions[giver], receiver)
	}

	return participants, exclusions, exRows.Err()
}

// loadCodes reads the whole code table of a draw
func loadCodes(q queryer, drawID string) (matcher.CodeTable, error) {
	rows, err := q.Query(`
		SELECT code, giver, receiver FROM secret_code WHERE draw_id = $1
	`, drawID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := matcher.CodeTable{}
	for rows.Next() {
		var code string
		var pair matcher.Pair
		if err := rows.Scan(&code, &pair.Giver, &pair.Receiver); err != nil {
			return nil, err
		}
		codes[code] = pair
	}

	return codes, rows.Err()
}

// saveDraw replaces the code table and marks the draw as drawn. Must run in a
// transaction so readers see either the old table or the new one. The draw
// row is updated first and only if its roster is still at rosterVersion,
// otherwise errRosterChanged is returned and nothing should be committed.
func saveDraw(tx execer, drawID, shareSlug string, rosterVersion int, result matcher.Result, drawnAt time.Time) error {
	res, err := tx.Exec(`
		UPDATE draw
		SET status = $1, share_slug = $2, attempts = $3, drawn_at = $4
		WHERE id = $5 AND roster_version = $6
	`, models.StatusDrawn, shareSlug, result.Attempts, drawnAt, drawID, rosterVersion)
	if err != nil {
		return fmt.Errorf("update draw: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draw: %w", err)
	}
	if n == 0 {
		return errRosterChanged
	}

	if _, err := tx.Exec(`DELETE FROM secret_code WHERE draw_id = $1`, drawID); err != nil {
		return fmt.Errorf("clear codes: %w", err)
	}

	for code, pair := range result.Codes {
		_, err := tx.Exec(`
			INSERT INTO secret_code (draw_id, code, giver, receiver)
			VALUES ($1, $2, $3, $4)
		`, drawID, code, pair.Giver, pair.Receiver)
		if err != nil {
			return fmt.Errorf("insert code %s: %w", code, err)
		}
	}

	return nil
}

// codeEntries flattens a code table, sorted by code
func codeEntries(codes matcher.CodeTable) []models.CodeEntry {
	entries := make([]models.CodeEntry, 0, len(codes))
	for code, pair := range codes {
		entries = append(entries, models.CodeEntry{
			Code:     code,
			Giver:    pair.Giver,
			Receiver: pair.Receiver,
		})
	}
	slices.SortFunc(entries, func(a, b models.CodeEntry) int {
		return strings.Compare(a.Code, b.Code)
	})
	return entries
}
