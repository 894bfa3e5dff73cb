package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTable(t *testing.T) {
	cols := []Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	if table == nil {
		t.Fatal("Expected non-nil table")
	}
	if !table.Empty() {
		t.Error("New table should be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.RowCount())
	}
}

func TestTable_SetRows(t *testing.T) {
	cols := []Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	rows := [][]string{
		{"1", "Alice"},
		{"2", "Bob"},
		{"3", "Charlie"},
	}
	table.SetRows(rows)

	if table.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.RowCount())
	}
	if table.Empty() {
		t.Error("Table should not be empty after setting rows")
	}
}

func TestTable_SetRows_ClampsSelection(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1"}, {"2"}, {"3"}})
	table.GoToBottom()

	// Shrinking the data pulls the cursor back in range
	table.SetRows([][]string{{"1"}})
	if table.Selected() != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", table.Selected())
	}
}

func TestTable_Navigation(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}})

	// Initially at row 0
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	// Move down
	table.MoveDown()
	if table.Selected() != 1 {
		t.Errorf("Expected selected=1, got %d", table.Selected())
	}

	// Move up
	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	// Can't move above 0
	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	// GoToBottom
	table.GoToBottom()
	if table.Selected() != 4 {
		t.Errorf("Expected selected=4, got %d", table.Selected())
	}

	// Can't move below last
	table.MoveDown()
	if table.Selected() != 4 {
		t.Errorf("Expected selected=4, got %d", table.Selected())
	}

	// GoToTop
	table.GoToTop()
	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}
}

func TestTable_SelectedRow(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}, {Title: "Name", Width: 10}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1", "Alice"}, {"2", "Bob"}})

	row := table.SelectedRow()
	if row == nil {
		t.Fatal("Expected non-nil selected row")
	}
	if row[0] != "1" || row[1] != "Alice" {
		t.Errorf("Expected [1, Alice], got %v", row)
	}

	table.MoveDown()
	row = table.SelectedRow()
	if row[0] != "2" || row[1] != "Bob" {
		t.Errorf("Expected [2, Bob], got %v", row)
	}
}

func TestTable_EmptySelectedRow(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)

	row := table.SelectedRow()
	if row != nil {
		t.Errorf("Expected nil for empty table selected row, got %v", row)
	}
}

func TestTable_PageNavigation(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetVisibleRows(3)

	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{string(rune('A' + i))}
	}
	table.SetRows(rows)

	// PageDown should jump by visible rows
	table.PageDown()
	if table.Selected() != 3 {
		t.Errorf("After PageDown expected selected=3, got %d", table.Selected())
	}

	// PageUp should jump back
	table.PageUp()
	if table.Selected() != 0 {
		t.Errorf("After PageUp expected selected=0, got %d", table.Selected())
	}
}

func TestTable_Marks(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1"}, {"2"}, {"3"}})
	table.SetMarks([]bool{true, false, true})

	if !table.Marked(0) {
		t.Error("Expected row 0 marked")
	}
	if table.Marked(1) {
		t.Error("Expected row 1 unmarked")
	}
	if !table.Marked(2) {
		t.Error("Expected row 2 marked")
	}

	output := table.Render()
	if !strings.Contains(output, "*") {
		t.Error("Expected mark glyph in rendered output")
	}
}

func TestTable_Marks_ResetOnSetRows(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1"}, {"2"}})
	table.SetMarks([]bool{true, true})

	table.SetRows([][]string{{"1"}, {"2"}})
	if table.Marked(0) || table.Marked(1) {
		t.Error("Expected marks cleared after SetRows")
	}
}

func TestTable_Marked_OutOfRange(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetRows([][]string{{"1"}})
	table.SetMarks([]bool{true})

	if table.Marked(-1) {
		t.Error("Expected false for negative index")
	}
	if table.Marked(5) {
		t.Error("Expected false for out-of-range index")
	}
}

func TestTable_SetColumnWidths(t *testing.T) {
	cols := []Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 10},
	}
	table := NewTable(cols)
	table.SetRows([][]string{{"1", "Alice"}})

	table.SetColumnWidths([]int{8, 30})
	if table.columns[0].Width != 8 {
		t.Errorf("Expected width 8, got %d", table.columns[0].Width)
	}
	if table.columns[1].Width != 30 {
		t.Errorf("Expected width 30, got %d", table.columns[1].Width)
	}
}

func TestTable_SetColumnWidths_IgnoresInvalid(t *testing.T) {
	cols := []Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 10},
	}
	table := NewTable(cols)

	// Zero widths and excess entries are ignored
	table.SetColumnWidths([]int{0, 12, 99})
	if table.columns[0].Width != 5 {
		t.Errorf("Expected width 5 preserved, got %d", table.columns[0].Width)
	}
	if table.columns[1].Width != 12 {
		t.Errorf("Expected width 12, got %d", table.columns[1].Width)
	}
}

func TestTable_Render_ContainsHeaders(t *testing.T) {
	cols := []Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 10},
	}

	table := NewTable(cols)
	table.SetRows([][]string{{"1", "Alice"}, {"2", "Bob"}})

	output := table.Render()

	if !strings.Contains(output, "ID") {
		t.Error("Expected header 'ID' in output")
	}
	if !strings.Contains(output, "Name") {
		t.Error("Expected header 'Name' in output")
	}
	if !strings.Contains(output, "Alice") {
		t.Error("Expected row data 'Alice' in output")
	}
}

func TestTable_Render_TruncatesLongCells(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 6}}
	table := NewTable(cols)
	table.SetRows([][]string{{"Supercalifragilistic"}})

	output := table.Render()
	if strings.Contains(output, "Supercalifragilistic") {
		t.Error("Expected long cell to be truncated")
	}
	if !strings.Contains(output, "…") {
		t.Error("Expected ellipsis for truncated cell")
	}
}

func TestTable_Render_ShowsPagination(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}

	table := NewTable(cols)
	table.SetRows([][]string{{"1"}, {"2"}})
	table.SetPagination(1, 5, 100)

	output := table.Render()

	if !strings.Contains(output, "Page 1/5") {
		t.Error("Expected pagination info in output")
	}
	if !strings.Contains(output, "100 total") {
		t.Error("Expected total count in output")
	}
}

func TestTable_Render_RightAligned(t *testing.T) {
	cols := []Column{
		{Title: "Value", Width: 10, Align: lipgloss.Right},
	}

	table := NewTable(cols)
	table.SetRows([][]string{{"42"}})
	table.Focus(true)

	output := table.Render()
	if !strings.Contains(output, "42") {
		t.Error("Expected '42' in output")
	}
}

func TestTable_Render_ScrollsToSelection(t *testing.T) {
	cols := []Column{{Title: "ID", Width: 5}}
	table := NewTable(cols)
	table.SetVisibleRows(2)
	table.SetRows([][]string{{"aa"}, {"bb"}, {"cc"}, {"dd"}})

	table.GoToBottom()
	output := table.Render()

	if !strings.Contains(output, "dd") {
		t.Error("Expected last row visible after GoToBottom")
	}
	if strings.Contains(output, "aa") {
		t.Error("Expected first row scrolled out of view")
	}
}
