package inventory

import (
	"strings"
	"time"

	"github.com/pantryterm/pantry/internal/models"
)

// AddItemInput contains data for adding an item.
type AddItemInput struct {
	Title          string
	Quantity       float64
	Note           string
	ExpirationDate *time.Time
}

// Validate checks the input before anything is persisted.
func (in *AddItemInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	return nil
}

// UpdateItemInput contains the full replacement state for an item.
type UpdateItemInput struct {
	Title          string
	Quantity       float64
	Note           string
	ExpirationDate *time.Time
}

// Validate checks the input before anything is persisted.
func (in *UpdateItemInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	return nil
}

// ReminderScheduler keeps local expiry reminders in step with the
// inventory. Implementations must tolerate items without expiration dates.
type ReminderScheduler interface {
	ScheduleFor(item *models.Item, thresholdDays int)
	CancelFor(itemID string)
	RescheduleAll(items []*models.Item, thresholdDays int)
}

// ThresholdSource supplies the current expiring-soon threshold.
type ThresholdSource interface {
	ThresholdDays() int
}
