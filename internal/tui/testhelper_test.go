package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pantryterm/pantry/internal/barcode"
	"github.com/pantryterm/pantry/internal/config"
	"github.com/pantryterm/pantry/internal/database"
	"github.com/pantryterm/pantry/internal/services/inventory"
	"github.com/pantryterm/pantry/internal/util"
)

// newTestApp creates an App instance backed by an in-memory database for
// testing. The App is initialized with a default config, a frozen clock,
// and migrations applied. The window is set to 120x40 and marked ready.
// The search debounce is disabled so searches commit synchronously.
func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Run migrations
	migrationsDir := filepath.Join("..", "database", "migrations")
	runTestMigrations(t, db, migrationsDir)

	cfg := config.Default()
	now, _ := time.Parse(time.RFC3339, "2026-03-15T09:00:00Z")
	clock := util.NewFrozenClock(now)

	app := New(db, cfg, clock)
	app.engine.SetDebounce(0)

	// Simulate a window size message to make the app ready
	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	return app
}

// runTestMigrations runs SQL migration files (Up portion only) on the database.
func runTestMigrations(t *testing.T, db *database.DB, migrationsDir string) {
	t.Helper()

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("reading migrations directory: %v", err)
	}

	ctx := context.Background()
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".sql" {
			continue
		}

		sqlPath := filepath.Join(migrationsDir, file.Name())
		sqlBytes, err := os.ReadFile(sqlPath)
		if err != nil {
			t.Fatalf("reading migration %s: %v", file.Name(), err)
		}

		sqlStr := string(sqlBytes)
		if idx := strings.Index(sqlStr, "-- +migrate Down"); idx >= 0 {
			sqlStr = sqlStr[:idx]
		}

		if _, err := db.ExecContext(ctx, sqlStr); err != nil {
			t.Fatalf("executing migration %s: %v", file.Name(), err)
		}
	}
}

// addTestItem adds an item through the inventory service and applies the
// resulting snapshots, as the running program's snapshot loop would.
func addTestItem(t *testing.T, app *App, title string, exp *time.Time) {
	t.Helper()

	_, err := app.inventorySvc.Add(context.Background(), inventory.AddItemInput{
		Title:          title,
		Quantity:       1,
		ExpirationDate: exp,
	})
	if err != nil {
		t.Fatalf("adding item %q: %v", title, err)
	}
	drainSnapshots(app)
}

// drainSnapshots applies any snapshots the engine has queued. In the running
// program the Bubble Tea loop does this via waitForSnapshot.
func drainSnapshots(app *App) {
	for {
		select {
		case s := <-app.snapshots:
			app.applySnapshot(s)
		default:
			return
		}
	}
}

// stubBarcodeClient resolves every code to a fixed product.
type stubBarcodeClient struct{}

func (stubBarcodeClient) Lookup(_ context.Context, code string) (*barcode.Product, error) {
	return &barcode.Product{Code: code, Label: "Stub Product"}, nil
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
