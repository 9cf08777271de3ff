// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/quickly-gift/auth"
	"github.com/danielhkuo/quickly-gift/cliparse"
	"github.com/danielhkuo/quickly-gift/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		DrawSlugSalt: "test-slug-salt",
		IPHashSalt:   "test-ip-salt",
		MaxAttempts:  10,
		BaseURL:      "https://quickly-gift.test",
	}
}

// CreateTestDraw inserts a draft draw with the given roster and returns its ID and admin key
func CreateTestDraw(t *testing.T, conn *sql.DB, cfg cliparse.Config, participants []string, exclusions map[string][]string) (drawID, adminKey string) {
	t.Helper()

	drawID = auth.NewDrawID()
	adminKey = auth.GenerateAdminKey(drawID, cfg.AdminKeySalt)

	_, err := conn.Exec(`
		INSERT INTO draw (id, title, creator_name, status, created_at)
		VALUES ($1, 'Test Draw', 'TestUser', 'draft', $2)
	`, drawID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test draw: %v", err)
	}

	for i, name := range participants {
		_, err := conn.Exec(`
			INSERT INTO participant (draw_id, name, seq) VALUES ($1, $2, $3)
		`, drawID, name, i)
		if err != nil {
			t.Fatalf("Failed to create test participant: %v", err)
		}
	}

	for giver, receivers := range exclusions {
		for _, receiver := range receivers {
			_, err := conn.Exec(`
				INSERT INTO exclusion (draw_id, giver, receiver) VALUES ($1, $2, $3)
			`, drawID, giver, receiver)
			if err != nil {
				t.Fatalf("Failed to create test exclusion: %v", err)
			}
		}
	}

	return drawID, adminKey
}

// MarkTestDrawn stores a code table directly and marks the draw as drawn.
// codes maps code -> [giver, receiver]. Returns the share slug.
func MarkTestDrawn(t *testing.T, conn *sql.DB, cfg cliparse.Config, drawID string, codes map[string][2]string) string {
	t.Helper()

	slug := auth.GenerateShareSlug(drawID, cfg.DrawSlugSalt)
	for code, pair := range codes {
		_, err := conn.Exec(`
			INSERT INTO secret_code (draw_id, code, giver, receiver) VALUES ($1, $2, $3, $4)
		`, drawID, code, pair[0], pair[1])
		if err != nil {
			t.Fatalf("Failed to create test code: %v", err)
		}
	}

	_, err := conn.Exec(`
		UPDATE draw SET status = 'drawn', share_slug = $1, attempts = 1, drawn_at = $2 WHERE id = $3
	`, slug, time.Now(), drawID)
	if err != nil {
		t.Fatalf("Failed to mark test draw drawn: %v", err)
	}

	return slug
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
