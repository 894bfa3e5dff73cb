package items

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pantryterm/pantry/internal/models"
)

var testNow = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

func testItem(id, title string, exp *time.Time) *models.Item {
	return &models.Item{
		ID:             id,
		Title:          title,
		Quantity:       1,
		ExpirationDate: exp,
		CreatedAt:      testNow.Add(-48 * time.Hour),
		UpdatedAt:      testNow.Add(-24 * time.Hour),
	}
}

func expiringAt(t time.Time) *time.Time {
	return &t
}

func newPopulatedView(n int) *ListView {
	v := NewListView()
	v.SetNow(testNow)
	v.SetThreshold(5)

	items := make([]*models.Item, n)
	for i := range items {
		items[i] = testItem(fmt.Sprintf("id-%03d", i), fmt.Sprintf("Item %03d", i), nil)
	}
	v.SetItems(items, "")
	return v
}

func TestListView_Render(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetThreshold(5)
	v.SetItems([]*models.Item{
		testItem("a", "Milk", expiringAt(testNow.Add(48*time.Hour))),
		testItem("b", "Rice", nil),
	}, "")

	output := v.Render(120, 40)

	if !strings.Contains(output, "PANTRY ITEMS") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "Milk") || !strings.Contains(output, "Rice") {
		t.Error("expected both items in output")
	}
	if !strings.Contains(output, "Expiring Soon") {
		t.Error("expected expiring status label in output")
	}
	if !strings.Contains(output, "No Expiration") {
		t.Error("expected no-expiration status label in output")
	}
}

func TestListView_Render_Empty(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetItems(nil, "")

	output := v.Render(120, 40)
	if !strings.Contains(output, "No items yet") {
		t.Error("expected empty state in output")
	}
}

func TestListView_Render_EmptySearch(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetItems(nil, "zzz")

	output := v.Render(120, 40)
	if !strings.Contains(output, "No items match the search.") {
		t.Error("expected empty search state in output")
	}
	if !strings.Contains(output, "Filter: ") {
		t.Error("expected filter line in output")
	}
}

func TestListView_Render_SearchCount(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetItems([]*models.Item{
		testItem("a", "Milk", nil),
		testItem("b", "Oat Milk", nil),
	}, "milk")

	output := v.Render(120, 40)
	if !strings.Contains(output, "(2 matching)") {
		t.Error("expected match count in output")
	}
}

func TestListView_ExpiredLabel(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetThreshold(5)
	v.SetItems([]*models.Item{
		testItem("a", "Old Yogurt", expiringAt(testNow.Add(-72*time.Hour))),
	}, "")

	output := v.Render(120, 40)
	if !strings.Contains(output, "EXPIRED") {
		t.Error("expected EXPIRED cell for expired item")
	}
}

func TestListView_SelectedItem(t *testing.T) {
	v := newPopulatedView(3)

	item := v.SelectedItem()
	if item == nil || item.ID != "id-000" {
		t.Fatalf("expected first item selected, got %v", item)
	}

	v.MoveDown()
	item = v.SelectedItem()
	if item == nil || item.ID != "id-001" {
		t.Errorf("expected second item selected, got %v", item)
	}
}

func TestListView_SelectedItem_Empty(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetItems(nil, "")

	if v.SelectedItem() != nil {
		t.Error("expected nil selection on empty list")
	}
}

func TestListView_Pagination(t *testing.T) {
	v := newPopulatedView(45)
	v.SetVisibleRows(20)

	// Page 1 shows the first slice
	if got := v.SelectedItem().ID; got != "id-000" {
		t.Fatalf("expected id-000 on page 1, got %s", got)
	}

	v.NextPage()
	if got := v.SelectedItem().ID; got != "id-020" {
		t.Errorf("expected id-020 on page 2, got %s", got)
	}

	v.NextPage()
	// Page 3 holds items 40-44
	if got := v.SelectedItem().ID; got != "id-040" {
		t.Errorf("expected id-040 on page 3, got %s", got)
	}

	// No page 4
	v.NextPage()
	if got := v.SelectedItem().ID; got != "id-040" {
		t.Errorf("expected to stay on page 3, got %s", got)
	}

	v.PrevPage()
	if got := v.SelectedItem().ID; got != "id-020" {
		t.Errorf("expected id-020 back on page 2, got %s", got)
	}
}

func TestListView_Pagination_ClampsOnShrink(t *testing.T) {
	v := newPopulatedView(45)
	v.SetVisibleRows(20)
	v.NextPage()
	v.NextPage()

	// Shrink the data below the current page
	v.SetItems([]*models.Item{testItem("only", "Only", nil)}, "")
	if got := v.SelectedItem(); got == nil || got.ID != "only" {
		t.Errorf("expected page clamped to remaining item, got %v", got)
	}
}

func TestListView_Marks(t *testing.T) {
	marked := map[string]bool{"id-001": true}

	v := NewListView()
	v.SetNow(testNow)
	v.SetMarked(func(id string) bool { return marked[id] })
	v.SetItems([]*models.Item{
		testItem("id-000", "Milk", nil),
		testItem("id-001", "Eggs", nil),
	}, "")

	output := v.Render(120, 40)
	if !strings.Contains(output, "*") {
		t.Error("expected mark glyph for marked item")
	}

	// Refresh picks up mark changes
	delete(marked, "id-001")
	v.Refresh()
	output = v.Render(120, 40)
	if strings.Contains(output, "*") {
		t.Error("expected mark cleared after Refresh")
	}
}

func TestListView_RenderDetail(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetThreshold(5)

	item := testItem("a", "Milk", expiringAt(testNow.Add(48*time.Hour)))
	item.Note = "2% fat"

	output := v.RenderDetail(item)

	if !strings.Contains(output, "ITEM DETAILS") {
		t.Error("expected detail title")
	}
	if !strings.Contains(output, "Milk") {
		t.Error("expected item title in detail")
	}
	if !strings.Contains(output, "2% fat") {
		t.Error("expected note in detail")
	}
	if !strings.Contains(output, "days left") {
		t.Error("expected days-left line in detail")
	}
	if !strings.Contains(output, "Added:") {
		t.Error("expected history section in detail")
	}
}

func TestListView_RenderDetail_NoExpiration(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)

	output := v.RenderDetail(testItem("a", "Rice", nil))
	if !strings.Contains(output, "never") {
		t.Error("expected 'never' for item without expiration")
	}
}

func TestListView_RenderDetail_Expired(t *testing.T) {
	v := NewListView()
	v.SetNow(testNow)
	v.SetThreshold(5)

	output := v.RenderDetail(testItem("a", "Old Yogurt", expiringAt(testNow.Add(-48*time.Hour))))
	if !strings.Contains(output, "EXPIRED") {
		t.Error("expected EXPIRED in detail for expired item")
	}
}

func TestListView_RenderDetail_Nil(t *testing.T) {
	v := NewListView()

	output := v.RenderDetail(nil)
	if !strings.Contains(output, "No item selected") {
		t.Error("expected placeholder for nil item")
	}
}

func TestListView_Count(t *testing.T) {
	v := newPopulatedView(7)
	if v.Count() != 7 {
		t.Errorf("expected count 7, got %d", v.Count())
	}
}
