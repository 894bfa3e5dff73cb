package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/testutil"
)

func setupTestDB(t *testing.T) *testutil.TestDB {
	t.Helper()

	db := testutil.NewTestDB(t)

	migrationsDir := filepath.Join("..", "..", "internal", "database", "migrations")
	db.RunMigrations(t, migrationsDir)

	return db
}

func TestItemRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	t.Run("insert valid item", func(t *testing.T) {
		item := testutil.FixtureItem()

		if err := repo.Insert(ctx, nil, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}

		if found.Title != item.Title {
			t.Errorf("expected title %s, got %s", item.Title, found.Title)
		}
		if found.Quantity != item.Quantity {
			t.Errorf("expected quantity %v, got %v", item.Quantity, found.Quantity)
		}
		if found.ExpirationDate == nil {
			t.Fatal("expected expiration date to round-trip")
		}
	})

	t.Run("insert item without expiration", func(t *testing.T) {
		item := testutil.FixtureShelfStableItem()

		if err := repo.Insert(ctx, nil, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}

		if found.ExpirationDate != nil {
			t.Errorf("expected nil expiration, got %v", found.ExpirationDate)
		}
	})

	t.Run("insert with transaction", func(t *testing.T) {
		item := testutil.FixtureItem()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		if err := repo.Insert(ctx, tx, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit transaction: %v", err)
		}

		if _, err := repo.Get(ctx, item.ID); err != nil {
			t.Fatalf("failed to get item after commit: %v", err)
		}
	})
}

func TestItemRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	t.Run("update existing item", func(t *testing.T) {
		item := testutil.FixtureItem()
		if err := repo.Insert(ctx, nil, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		item.Title = "Updated Title"
		item.Quantity = 3
		item.Note = "moved to the freezer"
		item.UpdatedAt = time.Now().UTC()

		if err := repo.Update(ctx, nil, item); err != nil {
			t.Fatalf("failed to update item: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}

		if found.Title != "Updated Title" {
			t.Errorf("expected updated title, got %s", found.Title)
		}
		if found.Note != "moved to the freezer" {
			t.Errorf("expected updated note, got %s", found.Note)
		}
	})

	t.Run("update clears expiration", func(t *testing.T) {
		item := testutil.FixtureItem()
		if err := repo.Insert(ctx, nil, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		item.ExpirationDate = nil
		if err := repo.Update(ctx, nil, item); err != nil {
			t.Fatalf("failed to update item: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if found.ExpirationDate != nil {
			t.Errorf("expected expiration cleared, got %v", found.ExpirationDate)
		}
	})

	t.Run("update missing item returns not found", func(t *testing.T) {
		item := testutil.FixtureItem()

		err := repo.Update(ctx, nil, item)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestItemRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	t.Run("delete existing item", func(t *testing.T) {
		item := testutil.FixtureItem()
		if err := repo.Insert(ctx, nil, item); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}

		if err := repo.Delete(ctx, nil, item.ID); err != nil {
			t.Fatalf("failed to delete item: %v", err)
		}

		_, err := repo.Get(ctx, item.ID)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete missing item returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, nil, "no-such-id")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestItemRepository_List(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty list, got %d items", len(items))
		}
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		db.Truncate(t, "items")

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 3; i++ {
			createdAt := base.Add(time.Duration(i) * time.Minute)
			item := testutil.FixtureItem(func(it *models.Item) {
				it.CreatedAt = createdAt
				it.UpdatedAt = createdAt
			})
			if err := repo.Insert(ctx, nil, item); err != nil {
				t.Fatalf("failed to insert item: %v", err)
			}
		}

		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		for i := 1; i < len(items); i++ {
			if items[i].CreatedAt.Before(items[i-1].CreatedAt) {
				t.Errorf("items out of insertion order at index %d", i)
			}
		}
	})
}

func TestItemRepository_ExpirationRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	// An end-of-day expiration west of UTC lands on the next UTC date in
	// storage. Day counts must come back unchanged.
	loc := time.FixedZone("UTC-7", -7*60*60)
	exp := time.Date(2026, 8, 31, 23, 59, 59, 0, loc)
	item := testutil.FixtureExpiringItem(2, func(it *models.Item) {
		it.ExpirationDate = &exp
	})

	if err := repo.Insert(ctx, nil, item); err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}

	got, err := repo.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	if got.ExpirationDate == nil || !got.ExpirationDate.Equal(exp) {
		t.Fatalf("expected same instant after round trip, got %v", got.ExpirationDate)
	}

	now := time.Date(2026, 9, 1, 9, 0, 0, 0, loc)
	before, _ := item.DaysLeft(now)
	after, _ := got.DaysLeft(now)
	if before != after {
		t.Errorf("expected same day count after round trip, got %d vs %d", before, after)
	}
	if after != -1 {
		t.Errorf("expected -1 day for yesterday's expiration, got %d", after)
	}
}

func TestItemRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	if err := repo.Insert(ctx, nil, testutil.FixtureItem()); err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1, got %d", count)
	}
}
