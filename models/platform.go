package models

import (
	"strings"
	"time"
)

// Platform is a per-owner namespace entry for a site or service that
// credentials are scoped to. The title is stored in normalized form
// (trimmed, lowercased) and is unique within one owner.
type Platform struct {
	PlatformID int64  `json:"id"`
	OwnerID    int64  `json:"-"`
	Title      string `json:"title"`
	WebsiteURL string `json:"website_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Platform model.
func (p Platform) TableName() string {
	return "platforms"
}

// NormalizeTitle brings a platform title to its canonical stored form.
// All title comparisons and lookups go through this function so that
// "  GitHub " and "github" land on the same namespace entry.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
