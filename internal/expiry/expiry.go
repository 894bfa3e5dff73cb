// Package expiry holds the day math for item expiration. Every view,
// reminder, and display string derives its day counts from here so the
// whole application agrees on what "expires in N days" means.
package expiry

import (
	"math"
	"time"

	"github.com/pantryterm/pantry/internal/util"
)

// Bucket classifies an item's expiration state relative to a threshold.
type Bucket string

const (
	BucketNoExpiration Bucket = "no_expiration"
	BucketExpired      Bucket = "expired"
	BucketExpiringSoon Bucket = "expiring_soon"
	BucketFresh        Bucket = "fresh"
)

// String returns a display label for the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketNoExpiration:
		return "No Expiration"
	case BucketExpired:
		return "Expired"
	case BucketExpiringSoon:
		return "Expiring Soon"
	case BucketFresh:
		return "Fresh"
	default:
		return string(b)
	}
}

// DaysUntil returns the number of days left before expiration. The second
// return value is false when there is no expiration date.
//
// Day counts are calendar-based and inclusive of today: an item expiring
// tomorrow has 2 days left (today and tomorrow), an item expiring later
// today has 1 day left until the expiration instant passes, and an expired
// item reports zero or a negative count.
func DaysUntil(expiration *time.Time, now time.Time) (int, bool) {
	if expiration == nil {
		return 0, false
	}

	// Stored expirations come back in UTC; compare calendar days in
	// now's zone so a round trip through storage cannot shift the count.
	from := util.StartOfDay(now)
	to := util.StartOfDay(expiration.In(now.Location()))
	raw := int(math.Round(to.Sub(from).Hours() / 24))

	switch {
	case raw > 0:
		return raw + 1, true
	case raw < 0:
		return raw, true
	default:
		if expiration.After(now) {
			return 1, true
		}
		return 0, true
	}
}

// IsExpired reports whether the item's expiration has passed. Items without
// an expiration date never expire.
func IsExpired(expiration *time.Time, now time.Time) bool {
	d, ok := DaysUntil(expiration, now)
	return ok && d <= 0
}

// WithinThreshold reports whether the item should appear in the
// expiring-soon view. The boundary is inclusive: an item with exactly
// threshold days left qualifies, and already-expired items qualify too.
// Items without an expiration date never qualify.
func WithinThreshold(expiration *time.Time, now time.Time, threshold int) bool {
	d, ok := DaysUntil(expiration, now)
	return ok && d <= threshold
}

// Classify places an expiration date into a bucket relative to the threshold.
func Classify(expiration *time.Time, now time.Time, threshold int) Bucket {
	d, ok := DaysUntil(expiration, now)
	switch {
	case !ok:
		return BucketNoExpiration
	case d <= 0:
		return BucketExpired
	case d <= threshold:
		return BucketExpiringSoon
	default:
		return BucketFresh
	}
}
