package models

import "time"

// Draw status constants
const (
	StatusDraft = "draft"
	StatusDrawn = "drawn"
)

// Request types

// Participants/Exclusions win over the *_text fields when both are present.
type CreateDrawRequest struct {
	Title            string              `json:"title"`
	CreatorName      string              `json:"creator_name"`
	Participants     []string            `json:"participants,omitempty"`
	Exclusions       map[string][]string `json:"exclusions,omitempty"`
	ParticipantsText string              `json:"participants_text,omitempty"`
	ExclusionsText   string              `json:"exclusions_text,omitempty"`
}

type UpdateRosterRequest struct {
	Participants     []string            `json:"participants,omitempty"`
	Exclusions       map[string][]string `json:"exclusions,omitempty"`
	ParticipantsText string              `json:"participants_text,omitempty"`
	ExclusionsText   string              `json:"exclusions_text,omitempty"`
}

// Zero MaxAttempts means the server default
type GenerateDrawRequest struct {
	MaxAttempts int `json:"max_attempts,omitempty"`
}

type LookupRequest struct {
	Code string `json:"code"`
}

// Response types

type CreateDrawResponse struct {
	DrawID   string `json:"draw_id"`
	AdminKey string `json:"admin_key"`
}

type UpdateRosterResponse struct {
	Participants []string `json:"participants"`
	Exclusions   string   `json:"exclusions_text"`
}

type GenerateDrawResponse struct {
	ShareSlug string      `json:"share_slug"`
	ShareURL  string      `json:"share_url"`
	Attempts  int         `json:"attempts"`
	DrawnAt   time.Time   `json:"drawn_at"`
	Codes     []CodeEntry `json:"codes"`
}

type LookupResponse struct {
	Code     string `json:"code"`
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Domain types

type Draw struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CreatorName string     `json:"creator_name"`
	Status      string     `json:"status"`
	ShareSlug   *string    `json:"share_slug,omitempty"`
	Attempts    int        `json:"attempts"`
	DrawnAt     *time.Time `json:"drawn_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CodeEntry struct {
	Code     string `json:"code"`
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Admin view: everything, including the mapping
type DrawWithRoster struct {
	Draw           Draw                `json:"draw"`
	Participants   []string            `json:"participants"`
	Exclusions     map[string][]string `json:"exclusions"`
	ExclusionsText string              `json:"exclusions_text"`
	Codes          []CodeEntry         `json:"codes"`
	DrawnAgo       string              `json:"drawn_ago,omitempty"`
}

// Public view: never the mapping
type PublicDraw struct {
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Participants []string   `json:"participants"`
	CodeCount    int        `json:"code_count"`
	DrawnAt      *time.Time `json:"drawn_at,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
