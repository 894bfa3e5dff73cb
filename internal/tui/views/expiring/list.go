// Package expiring provides the TUI view over the expiring-soon list.
package expiring

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/tui/components"
	"github.com/pantryterm/pantry/internal/util"
)

// ListView displays items inside the expiring-soon window, soonest first.
// Expired items are included at the top so nothing silently drops off.
type ListView struct {
	table     *components.Table
	items     []*models.Item
	now       time.Time
	threshold int
}

// NewListView creates a new expiring-soon view.
func NewListView() *ListView {
	columns := []components.Column{
		{Title: "Title", Width: 28},
		{Title: "Qty", Width: 6, Align: lipgloss.Right},
		{Title: "Days Left", Width: 10, Align: lipgloss.Right},
		{Title: "Expires", Width: 12},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &ListView{table: table}
}

// SetNow sets the reference time used for day counts.
func (v *ListView) SetNow(t time.Time) {
	v.now = t
}

// SetItems replaces the displayed items with the given threshold in effect.
func (v *ListView) SetItems(items []*models.Item, threshold int) {
	v.items = items
	v.threshold = threshold

	rows := make([][]string, len(items))
	for i, it := range items {
		daysCell := "-"
		expCell := "-"
		if d, ok := it.DaysLeft(v.now); ok {
			if d <= 0 {
				daysCell = "EXPIRED"
			} else {
				daysCell = fmt.Sprintf("%d", d)
			}
			expCell = util.FormatDate(*it.ExpirationDate)
		}

		rows[i] = []string{
			it.Title,
			fmt.Sprintf("%.1f", it.Quantity),
			daysCell,
			expCell,
		}
	}

	v.table.SetRows(rows)
}

// SetVisibleRows sets the table height.
func (v *ListView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// MoveUp moves the selection up.
func (v *ListView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *ListView) MoveDown() {
	v.table.MoveDown()
}

// SelectedItem returns the currently selected item.
func (v *ListView) SelectedItem() *models.Item {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.items) {
		return v.items[idx]
	}
	return nil
}

// Count returns the number of displayed items.
func (v *ListView) Count() int {
	return len(v.items)
}

// Render renders the expiring-soon list.
func (v *ListView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true)
	helpStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== EXPIRING SOON ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Within the next %d days", v.threshold)))
	b.WriteString("\n\n")

	if v.table.Empty() {
		b.WriteString(labelStyle.Render("Nothing is expiring soon."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  F2:Items  F4:Settings"))

	return b.String()
}
