// Package items provides TUI views for the food inventory.
package items

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/tui/components"
	"github.com/pantryterm/pantry/internal/util"
)

// ListView displays the item list, either the full inventory or the
// current search results.
type ListView struct {
	table     *components.Table
	items     []*models.Item
	page      models.Pagination
	now       time.Time
	threshold int
	marked    func(id string) bool

	searchText string
	err        error
}

// NewListView creates a new item list view.
func NewListView() *ListView {
	columns := []components.Column{
		{Title: "Title", Width: 28},
		{Title: "Qty", Width: 6, Align: lipgloss.Right},
		{Title: "Note", Width: 24},
		{Title: "Expires", Width: 12},
		{Title: "Status", Width: 13},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &ListView{
		table: table,
		page:  models.Pagination{Page: 1, PageSize: 20},
	}
}

// SetNow sets the reference time used for day counts.
func (v *ListView) SetNow(t time.Time) {
	v.now = t
}

// SetThreshold sets the expiring-soon threshold used for status labels.
func (v *ListView) SetThreshold(days int) {
	v.threshold = days
}

// SetMarked installs the multi-selection predicate.
func (v *ListView) SetMarked(fn func(id string) bool) {
	v.marked = fn
}

// SetError sets a load error to display.
func (v *ListView) SetError(err error) {
	v.err = err
}

// SetItems replaces the displayed items. searchText is empty when the full
// inventory is shown and non-empty when items are search results.
func (v *ListView) SetItems(items []*models.Item, searchText string) {
	v.items = items
	v.searchText = searchText
	v.rebuild()
}

// Refresh rebuilds the table rows, picking up selection mark changes.
func (v *ListView) Refresh() {
	v.rebuild()
}

func (v *ListView) rebuild() {
	total := len(v.items)
	totalPages := v.page.TotalPages(total)
	if v.page.Page > totalPages {
		v.page.Page = totalPages
	}
	if v.page.Page < 1 {
		v.page.Page = 1
	}

	start := v.page.Offset()
	end := start + v.page.Limit()
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pageItems := v.items[start:end]

	rows := make([][]string, len(pageItems))
	marks := make([]bool, len(pageItems))
	for i, it := range pageItems {
		expires := "-"
		if d, ok := it.DaysLeft(v.now); ok {
			if d <= 0 {
				expires = "EXPIRED"
			} else if d < 30 {
				expires = fmt.Sprintf("%dd", d)
			} else {
				expires = util.FormatDate(*it.ExpirationDate)
			}
		}

		rows[i] = []string{
			it.Title,
			fmt.Sprintf("%.1f", it.Quantity),
			it.Note,
			expires,
			it.Bucket(v.now, v.threshold).String(),
		}
		if v.marked != nil {
			marks[i] = v.marked(it.ID)
		}
	}

	v.table.SetRows(rows)
	v.table.SetMarks(marks)
	v.table.SetPagination(v.page.Page, totalPages, total)
}

// SetVisibleRows sets the table height and page size together.
func (v *ListView) SetVisibleRows(n int) {
	if n < 1 {
		return
	}
	v.table.SetVisibleRows(n)
	v.page.PageSize = n
	v.rebuild()
}

// SetColumnWidths applies responsive column widths. Zero widths leave the
// column at its current size.
func (v *ListView) SetColumnWidths(widths []int) {
	v.table.SetColumnWidths(widths)
}

// NextPage moves to the next page.
func (v *ListView) NextPage() {
	if v.page.Page < v.page.TotalPages(len(v.items)) {
		v.page.Page++
		v.rebuild()
	}
}

// PrevPage moves to the previous page.
func (v *ListView) PrevPage() {
	if v.page.Page > 1 {
		v.page.Page--
		v.rebuild()
	}
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
	idx := v.page.Offset() + v.table.Selected()
	if idx >= 0 && idx < len(v.items) {
		return v.items[idx]
	}
	return nil
}

// Count returns the number of displayed items.
func (v *ListView) Count() int {
	return len(v.items)
}

// Render renders the item list.
func (v *ListView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== PANTRY ITEMS ==="))
	b.WriteString("\n\n")

	if v.searchText != "" {
		b.WriteString(labelStyle.Render("Filter: "))
		b.WriteString(v.searchText)
		b.WriteString(labelStyle.Render(fmt.Sprintf("  (%d matching)", len(v.items))))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.table.Empty() {
		if v.searchText != "" {
			b.WriteString(labelStyle.Render("No items match the search."))
		} else {
			b.WriteString(labelStyle.Render("No items yet. Press 'a' to add one."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Add  e:Edit  d:Delete  Space:Mark  x:Delete Marked  /:Search  b:Barcode  r:Reload"))

	return b.String()
}

// RenderDetail renders the detail view for an item.
func (v *ListView) RenderDetail(item *models.Item) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Faint(true).Width(16)
	warnStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Faint(true)

	if item == nil {
		return labelStyle.Render("No item selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== ITEM DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Title:") + " " + item.Title + "\n")
	b.WriteString(labelStyle.Render("Quantity:") + " " + fmt.Sprintf("%.2f", item.Quantity) + "\n")
	if item.Note != "" {
		b.WriteString(labelStyle.Render("Note:") + " " + item.Note + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("EXPIRATION"))
	b.WriteString("\n")
	if item.ExpirationDate == nil {
		b.WriteString(labelStyle.Render("Expires:") + " never\n")
	} else {
		d, _ := item.DaysLeft(v.now)
		var daysStr string
		switch {
		case d <= 0:
			daysStr = warnStyle.Render("EXPIRED")
		case d <= v.threshold:
			daysStr = warnStyle.Render(fmt.Sprintf("%d days left", d))
		default:
			daysStr = fmt.Sprintf("%d days left", d)
		}
		b.WriteString(labelStyle.Render("Expires:") + " " + util.FormatDate(*item.ExpirationDate) + " (" + daysStr + ")\n")
	}
	b.WriteString(labelStyle.Render("Status:") + " " + item.Bucket(v.now, v.threshold).String() + "\n")
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("HISTORY"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Added:") + " " + util.FormatDate(item.CreatedAt) +
		" (" + util.RelativeTimeString(item.CreatedAt, v.now) + ")\n")
	b.WriteString(labelStyle.Render("Updated:") + " " + util.FormatDate(item.UpdatedAt) + "\n")

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  d:Delete"))

	return b.String()
}
