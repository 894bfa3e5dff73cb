// Package repository provides data access for pantry records.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pantryterm/pantry/internal/models"
)

// ItemRepository handles item data access.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Insert adds a new item.
func (r *ItemRepository) Insert(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	query := `
		INSERT INTO items (
			id, title, quantity, note, expiration_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	execer := r.getExecer(tx)

	_, err := execer.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Quantity,
		item.Note,
		nullableTimePtrRFC3339(item.ExpirationDate),
		item.CreatedAt.UTC().Format(time.RFC3339),
		item.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// Update replaces all mutable fields of an existing item.
func (r *ItemRepository) Update(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	query := `
		UPDATE items
		SET title = ?, quantity = ?, note = ?, expiration_date = ?, updated_at = ?
		WHERE id = ?`

	execer := r.getExecer(tx)

	result, err := execer.ExecContext(ctx, query,
		item.Title,
		item.Quantity,
		item.Note,
		nullableTimePtrRFC3339(item.ExpirationDate),
		item.UpdatedAt.UTC().Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an item by ID.
func (r *ItemRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	execer := r.getExecer(tx)

	result, err := execer.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Get retrieves an item by ID.
func (r *ItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	query := `
		SELECT id, title, quantity, note, expiration_date, created_at, updated_at
		FROM items
		WHERE id = ?`

	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

// List retrieves all items ordered by insertion time.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT id, title, quantity, note, expiration_date, created_at, updated_at
		FROM items
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the number of items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *ItemRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ItemRepository) scanItem(row *sql.Row) (*models.Item, error) {
	var item models.Item
	var expStr sql.NullString
	var createdStr, updatedStr string

	err := row.Scan(
		&item.ID, &item.Title, &item.Quantity, &item.Note,
		&expStr, &createdStr, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	if expStr.Valid {
		if t, err := time.Parse(time.RFC3339, expStr.String); err == nil {
			item.ExpirationDate = &t
		}
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &item, nil
}

func (r *ItemRepository) scanItemRow(rows *sql.Rows) (*models.Item, error) {
	var item models.Item
	var expStr sql.NullString
	var createdStr, updatedStr string

	err := rows.Scan(
		&item.ID, &item.Title, &item.Quantity, &item.Note,
		&expStr, &createdStr, &updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning item row: %w", err)
	}

	if expStr.Valid {
		if t, err := time.Parse(time.RFC3339, expStr.String); err == nil {
			item.ExpirationDate = &t
		}
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &item, nil
}

func nullableTimePtrRFC3339(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}
