package tui

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/pantryterm/pantry/internal/config"
	"github.com/pantryterm/pantry/internal/database"
	"github.com/pantryterm/pantry/internal/util"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *App {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationsDir := filepath.Join("..", "database", "migrations")
	runTestMigrations(t, db, migrationsDir)

	cfg := config.Default()
	now, _ := time.Parse(time.RFC3339, "2026-03-15T09:00:00Z")
	clock := util.NewFrozenClock(now)

	return New(db, cfg, clock)
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_ItemsOnStartup(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")
}

func TestE2E_EmptyInventory(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Both the title and empty state appear in the same frame
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("PANTRY ITEMS")) &&
			bytes.Contains(bts, []byte("No items yet"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_NavigateToExpiring(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")
}

func TestE2E_NavigateToSettings(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "SETTINGS")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// F1 → Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to items
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "PANTRY ITEMS")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "PANTRY ITEMS")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press y → quit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	// Program should terminate; verify final model state
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press n → cancel
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Verify app is still responsive by navigating to another module
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")
}

func TestE2E_SearchFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// Enter search mode with '/'
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	waitFor(t, tm, "SEARCH")

	// Type search term
	tm.Type("milk")
	waitFor(t, tm, "milk")

	// Submit search with Enter
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Verify app is still responsive
	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "SETTINGS")
}

func TestE2E_SearchCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// Enter search mode
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	waitFor(t, tm, "SEARCH")

	// Type then cancel
	tm.Type("test")
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})

	// Verify app is still responsive after cancel
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")
}

func TestE2E_AddItemFormOpen(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// Press 'a' to open the add item form
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	waitFor(t, tm, "ADD ITEM")

	// Cancel form with Esc
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})

	// Should return to the item list - verify it's still responsive
	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "SETTINGS")
}

func TestE2E_AddItemAndSee(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	// Open the form, type a title, save
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	waitFor(t, tm, "ADD ITEM")
	tm.Type("Oatmeal")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	// The new item shows in the list
	waitFor(t, tm, "Oatmeal")
}

func TestE2E_SettingsThresholdAdjust(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "5 days")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	waitFor(t, tm, "6 days")
}

func TestE2E_FullNavigationRoundTrip(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Items
	waitFor(t, tm, "PANTRY ITEMS")

	// Expiring
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")

	// Settings
	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "SETTINGS")

	// Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to Settings
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "SETTINGS")

	// F2 → Back to Items
	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "PANTRY ITEMS")
}

func TestE2E_NarrowTerminal(t *testing.T) {
	// Responsive layout on a narrow terminal
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(50, 24))
	t.Cleanup(func() { tm.Quit() })

	// Should still render the item list
	waitFor(t, tm, "PANTRY ITEMS")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")
}

func TestE2E_WideTerminal(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(200, 50))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "PANTRY ITEMS")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "EXPIRING SOON")
}

func TestE2E_StatusBarShowsKeyBindings(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Footer key bindings should be in the rendered output
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("[F1]Help")) &&
			bytes.Contains(bts, []byte("[F2]Items")) &&
			bytes.Contains(bts, []byte("[F3]Expiring"))
	}, teatest.WithDuration(5*time.Second))
}
