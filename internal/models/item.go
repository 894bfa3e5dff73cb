package models

import (
	"strings"
	"time"

	"github.com/pantryterm/pantry/internal/expiry"
)

// Item is a tracked food item. ExpirationDate is nil for items that do not
// expire (dry goods, canned food without a marked date).
type Item struct {
	ID             string
	Title          string
	Quantity       float64
	Note           string
	ExpirationDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the item's fields.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if i.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	return nil
}

// HasExpiration returns true when the item carries an expiration date.
func (i *Item) HasExpiration() bool {
	return i.ExpirationDate != nil
}

// DaysLeft returns the days until expiration as of now.
// The second return value is false for items without an expiration date.
func (i *Item) DaysLeft(now time.Time) (int, bool) {
	return expiry.DaysUntil(i.ExpirationDate, now)
}

// IsExpired reports whether the item has expired as of now.
func (i *Item) IsExpired(now time.Time) bool {
	return expiry.IsExpired(i.ExpirationDate, now)
}

// Bucket classifies the item against the expiring-soon threshold.
func (i *Item) Bucket(now time.Time, threshold int) expiry.Bucket {
	return expiry.Classify(i.ExpirationDate, now, threshold)
}

// MatchesSearch reports whether the item matches a case-insensitive
// substring query against title or note. An empty query matches everything.
func (i *Item) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.Title), q) ||
		strings.Contains(strings.ToLower(i.Note), q)
}
