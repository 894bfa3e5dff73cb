package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantryterm/pantry/internal/models"
)

// FixtureItem creates a test item with sensible defaults.
func FixtureItem(overrides ...func(*models.Item)) *models.Item {
	id := uuid.New().String()
	now := time.Now().UTC()
	expiration := now.AddDate(0, 0, 14)

	item := &models.Item{
		ID:             id,
		Title:          "Test Item " + id[:8],
		Quantity:       1,
		Note:           "",
		ExpirationDate: &expiration,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// FixtureExpiredItem creates an item that expired two days ago.
func FixtureExpiredItem(overrides ...func(*models.Item)) *models.Item {
	return FixtureItem(append([]func(*models.Item){
		func(i *models.Item) {
			expired := time.Now().UTC().AddDate(0, 0, -2)
			i.ExpirationDate = &expired
		},
	}, overrides...)...)
}

// FixtureExpiringItem creates an item expiring within the given days.
func FixtureExpiringItem(daysLeft int, overrides ...func(*models.Item)) *models.Item {
	return FixtureItem(append([]func(*models.Item){
		func(i *models.Item) {
			exp := time.Now().UTC().AddDate(0, 0, daysLeft)
			i.ExpirationDate = &exp
		},
	}, overrides...)...)
}

// FixtureShelfStableItem creates an item without an expiration date.
func FixtureShelfStableItem(overrides ...func(*models.Item)) *models.Item {
	return FixtureItem(append([]func(*models.Item){
		func(i *models.Item) {
			i.ExpirationDate = nil
		},
	}, overrides...)...)
}

// StringPtr returns a pointer to a string value.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to an int value.
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to a float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}

// TimePtr returns a pointer to a time value.
func TimePtr(t time.Time) *time.Time {
	return &t
}
