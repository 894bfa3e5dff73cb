// Package seed inserts a small sample pantry for first runs and demos.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/repository"
	"github.com/pantryterm/pantry/internal/util"
)

// Generator inserts sample items relative to a reference time.
type Generator struct {
	db    *sql.DB
	repo  *repository.ItemRepository
	idGen *util.IDGenerator
	now   time.Time
}

// NewGenerator creates a seed data generator. Sample expiration dates are
// computed relative to now.
func NewGenerator(db *sql.DB, now time.Time) *Generator {
	return &Generator{
		db:    db,
		repo:  repository.NewItemRepository(db),
		idGen: util.NewIDGenerator(),
		now:   now,
	}
}

type sampleItem struct {
	title      string
	quantity   float64
	note       string
	expiryDays *int // days from now; nil means no expiration
}

func days(n int) *int { return &n }

// sampleItems mirrors a well-stocked fridge: a couple of expired items, a
// few expiring inside the default threshold, and some long-lived staples.
var sampleItems = []sampleItem{
	{"Swiss Cheese", 1, "sliced, for sandwiches", days(-2)},
	{"Organic Whole Milk", 1, "half gallon", days(1)},
	{"Potato Bread", 1, "", days(3)},
	{"Eggs", 12, "large, brown", days(14)},
	{"Ranch Dressing", 1, "opened last week", days(30)},
	{"Lavendar Honey", 1, "never expires, basically", nil},
	{"Blueberry Muffins", 4, "from the farmers market", days(2)},
	{"Tomatoes", 6, "on the vine", days(5)},
	{"Candy Bars", 8, "hidden from the kids", days(180)},
}

// Generate inserts the sample items. It is a no-op when the items table
// already has rows, so repeated --seed runs do not duplicate data.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	count, err := g.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking existing items: %w", err)
	}
	if count > 0 {
		slog.Info("items already present, skipping seed", "count", count)
		return 0, nil
	}

	inserted := 0
	for _, s := range sampleItems {
		item := &models.Item{
			ID:        g.idGen.NewID(),
			Title:     s.title,
			Quantity:  s.quantity,
			Note:      s.note,
			CreatedAt: g.now,
			UpdatedAt: g.now,
		}
		if s.expiryDays != nil {
			exp := util.EndOfDay(g.now.AddDate(0, 0, *s.expiryDays))
			item.ExpirationDate = &exp
		}

		if err := g.repo.Insert(ctx, nil, item); err != nil {
			return inserted, fmt.Errorf("inserting %q: %w", s.title, err)
		}
		inserted++
	}

	slog.Info("seed data generated", "items", inserted)
	return inserted, nil
}
