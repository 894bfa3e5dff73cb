package expiry

import (
	"testing"
	"time"

	"github.com/pantryterm/pantry/internal/util"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("no expiration date", func(t *testing.T) {
		d, ok := DaysUntil(nil, now)
		if ok {
			t.Error("expected ok=false for nil expiration")
		}
		if d != 0 {
			t.Errorf("expected 0 days, got %d", d)
		}
	})

	t.Run("expires tomorrow counts today", func(t *testing.T) {
		exp := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
		d, ok := DaysUntil(&exp, now)
		if !ok {
			t.Fatal("expected ok=true")
		}
		if d != 2 {
			t.Errorf("expected 2 days, got %d", d)
		}
	})

	t.Run("expires in four calendar days", func(t *testing.T) {
		exp := time.Date(2026, 3, 14, 0, 30, 0, 0, time.UTC)
		d, _ := DaysUntil(&exp, now)
		if d != 5 {
			t.Errorf("expected 5 days, got %d", d)
		}
	})

	t.Run("expires later today", func(t *testing.T) {
		exp := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
		d, _ := DaysUntil(&exp, now)
		if d != 1 {
			t.Errorf("expected 1 day, got %d", d)
		}
	})

	t.Run("expired earlier today", func(t *testing.T) {
		exp := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
		d, _ := DaysUntil(&exp, now)
		if d != 0 {
			t.Errorf("expected 0 days, got %d", d)
		}
	})

	t.Run("expired three days ago", func(t *testing.T) {
		exp := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
		d, _ := DaysUntil(&exp, now)
		if d != -3 {
			t.Errorf("expected -3 days, got %d", d)
		}
	})
}

func TestDaysUntil_StorageRoundTrip(t *testing.T) {
	// Expirations are stored as UTC RFC3339 strings and parsed back in
	// UTC, while now is local. The count must not depend on that.
	loc := time.FixedZone("UTC-7", -7*60*60)
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, loc)
	exp := util.EndOfDay(time.Date(2026, 8, 31, 12, 0, 0, 0, loc))

	d, ok := DaysUntil(&exp, now)
	if !ok || d != -1 {
		t.Fatalf("expected -1 day before storage, got %d", d)
	}

	parsed, err := time.Parse(time.RFC3339, exp.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("parsing stored expiration: %v", err)
	}

	d2, _ := DaysUntil(&parsed, now)
	if d2 != -1 {
		t.Errorf("expected -1 day after storage round trip, got %d", d2)
	}

	t.Run("east of UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*60*60)
		now := time.Date(2026, 9, 1, 9, 0, 0, 0, loc)
		// A morning expiration lands on the previous UTC date in storage.
		exp := time.Date(2026, 9, 2, 6, 0, 0, 0, loc)

		parsed, err := time.Parse(time.RFC3339, exp.UTC().Format(time.RFC3339))
		if err != nil {
			t.Fatalf("parsing stored expiration: %v", err)
		}

		d, _ := DaysUntil(&parsed, now)
		if d != 2 {
			t.Errorf("expected 2 days after storage round trip, got %d", d)
		}
	})
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("nil expiration never expires", func(t *testing.T) {
		if IsExpired(nil, now) {
			t.Error("expected not expired")
		}
	})

	t.Run("past date is expired", func(t *testing.T) {
		exp := now.AddDate(0, 0, -1)
		if !IsExpired(&exp, now) {
			t.Error("expected expired")
		}
	})

	t.Run("passed instant on same day is expired", func(t *testing.T) {
		exp := now.Add(-time.Hour)
		if !IsExpired(&exp, now) {
			t.Error("expected expired")
		}
	})

	t.Run("future date is not expired", func(t *testing.T) {
		exp := now.AddDate(0, 0, 3)
		if IsExpired(&exp, now) {
			t.Error("expected not expired")
		}
	})
}

func TestWithinThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("exactly threshold days qualifies", func(t *testing.T) {
		exp := util.EndOfDay(now.AddDate(0, 0, 4)) // 5 days left counting today
		if !WithinThreshold(&exp, now, 5) {
			t.Error("expected within threshold")
		}
	})

	t.Run("one past threshold does not qualify", func(t *testing.T) {
		exp := util.EndOfDay(now.AddDate(0, 0, 5)) // 6 days left
		if WithinThreshold(&exp, now, 5) {
			t.Error("expected outside threshold")
		}
	})

	t.Run("expired items qualify", func(t *testing.T) {
		exp := now.AddDate(0, 0, -2)
		if !WithinThreshold(&exp, now, 5) {
			t.Error("expected expired item within threshold")
		}
	})

	t.Run("nil expiration never qualifies", func(t *testing.T) {
		if WithinThreshold(nil, now, 5) {
			t.Error("expected nil expiration outside threshold")
		}
	})
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		expiration *time.Time
		threshold  int
		want       Bucket
	}{
		{"nil date", nil, 5, BucketNoExpiration},
		{"past date", timePtr(now.AddDate(0, 0, -1)), 5, BucketExpired},
		{"within threshold", timePtr(util.EndOfDay(now.AddDate(0, 0, 2))), 5, BucketExpiringSoon},
		{"beyond threshold", timePtr(now.AddDate(0, 0, 30)), 5, BucketFresh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.expiration, now, tc.threshold)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestBucketString(t *testing.T) {
	if BucketExpiringSoon.String() != "Expiring Soon" {
		t.Errorf("unexpected label: %s", BucketExpiringSoon.String())
	}
	if BucketNoExpiration.String() != "No Expiration" {
		t.Errorf("unexpected label: %s", BucketNoExpiration.String())
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
