// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewDrawID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewDrawID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("NewDrawID() = %q is not a UUID: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Errorf("NewDrawID() version = %d, want 4", parsed.Version())
		}
		if seen[id] {
			t.Errorf("NewDrawID() produced duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name   string
		drawID string
		salt   string
	}{
		{"standard", "draw123", "secret-salt"},
		{"empty draw id", "", "salt"},
		{"empty salt", "draw456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.drawID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			// Should be deterministic
			if key != GenerateAdminKey(tt.drawID, tt.salt) {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			if tt.drawID != "" && tt.salt != "" {
				if key == GenerateAdminKey(tt.drawID+"x", tt.salt) {
					t.Error("GenerateAdminKey() produced same key for different draw IDs")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	drawID := "test-draw-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(drawID, salt)

	tests := []struct {
		name     string
		drawID   string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", drawID, validKey, salt, false},
		{"wrong key", drawID, "wrong-key", salt, true},
		{"wrong draw id", "different-draw", validKey, salt, true},
		{"wrong salt", drawID, validKey, "different-salt", true},
		{"empty key", drawID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.drawID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestGenerateShareSlug(t *testing.T) {
	tests := []struct {
		name   string
		drawID string
		salt   string
	}{
		{"standard", "draw-abc-123", "slug-salt"},
		{"different draw", "draw-xyz-456", "slug-salt"},
		{"different salt", "draw-abc-123", "other-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := GenerateShareSlug(tt.drawID, tt.salt)

			if slug == "" {
				t.Error("GenerateShareSlug() returned empty string")
			}
			if slug != GenerateShareSlug(tt.drawID, tt.salt) {
				t.Error("GenerateShareSlug() is not deterministic")
			}
			if len(slug) > 15 {
				t.Errorf("GenerateShareSlug() too long: %d chars", len(slug))
			}
			for _, c := range slug {
				if !isBase62(c) {
					t.Errorf("GenerateShareSlug() contains non-alphanumeric char: %c", c)
				}
			}
		})
	}

	if GenerateShareSlug("draw1", "salt") == GenerateShareSlug("draw2", "salt") {
		t.Error("GenerateShareSlug() produced same slug for different draw IDs")
	}
	if GenerateShareSlug("draw1", "salt1") == GenerateShareSlug("draw1", "salt2") {
		t.Error("GenerateShareSlug() produced same slug for different salts")
	}
}

func TestBase62Encode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"zero bytes", []byte{0, 0, 0, 0}, "0"},
		{"small value", []byte{0, 0, 0, 1}, "1"},
		{"sixty two", []byte{62}, "10"},
		{"large value", []byte{255, 255, 255, 255, 255, 255, 255, 255}, "lYGhA16ahyf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base62Encode(tt.input); got != tt.want {
				t.Errorf("base62Encode(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334"},
		{"localhost", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, "ip-salt")

			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}
			if hash != HashIP(tt.ip, "ip-salt") {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func isBase62(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func BenchmarkGenerateAdminKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateAdminKey("test-draw-123", "test-salt")
	}
}

func BenchmarkGenerateShareSlug(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateShareSlug("test-draw-123", "slug-salt")
	}
}
