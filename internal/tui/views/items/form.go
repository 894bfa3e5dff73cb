package items

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/tui/components"
	"github.com/pantryterm/pantry/internal/util"
)

// FormMode indicates the form mode.
type FormMode int

const (
	FormModeAdd FormMode = iota
	FormModeEdit
)

// ItemData is the validated result of a submitted form.
type ItemData struct {
	Title          string
	Quantity       float64
	Note           string
	ExpirationDate *time.Time
}

// ItemForm is a form for adding or editing an item. The expiration date
// is optional; leaving all three date fields blank means the item never
// expires.
type ItemForm struct {
	mode FormMode
	item *models.Item

	// Form fields
	title    *components.Input
	quantity *components.Input
	note     *components.Input
	expYear  *components.Input
	expMonth *components.Input
	expDay   *components.Input

	// State
	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewItemForm creates a new item form.
func NewItemForm(mode FormMode) *ItemForm {
	f := &ItemForm{
		mode: mode,

		title:    components.NewInput("Title").SetRequired(true).SetWidth(30),
		quantity: components.NewInput("Quantity").SetWidth(8).SetValue("1"),
		note:     components.NewInput("Note").SetWidth(40),
		expYear:  components.NewInput("Year").SetWidth(6).SetMaxLength(4).SetPlaceholder("YYYY"),
		expMonth: components.NewInput("Month").SetWidth(4).SetMaxLength(2).SetPlaceholder("MM"),
		expDay:   components.NewInput("Day").SetWidth(4).SetMaxLength(2).SetPlaceholder("DD"),
	}

	f.fields = []components.FormField{
		f.title,
		f.quantity,
		f.note,
		f.expYear,
		f.expMonth,
		f.expDay,
	}

	f.fields[0].Focus(true)

	return f
}

// SetItem populates the form with existing item data for editing.
func (f *ItemForm) SetItem(item *models.Item) {
	f.item = item
	f.title.SetValue(item.Title)
	f.quantity.SetValue(strconv.FormatFloat(item.Quantity, 'f', -1, 64))
	f.note.SetValue(item.Note)
	if item.ExpirationDate != nil {
		exp := *item.ExpirationDate
		f.expYear.SetValue(fmt.Sprintf("%d", exp.Year()))
		f.expMonth.SetValue(fmt.Sprintf("%02d", exp.Month()))
		f.expDay.SetValue(fmt.Sprintf("%02d", exp.Day()))
	}
}

// Prefill sets the title and note, used when a barcode lookup succeeds.
func (f *ItemForm) Prefill(title, note string) {
	f.title.SetValue(title)
	f.note.SetValue(note)
}

// EditingID returns the id of the item being edited, or "" in add mode.
func (f *ItemForm) EditingID() string {
	if f.item == nil {
		return ""
	}
	return f.item.ID
}

// HandleKey handles key input.
func (f *ItemForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		// Move to next field, or submit on last field
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *ItemForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex++
	if f.focusIndex >= len(f.fields) {
		f.focusIndex = 0
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *ItemForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *ItemForm) submit() {
	f.err = ""

	valid := f.title.Validate()

	if _, err := f.parseQuantity(); err != nil {
		f.err = err.Error()
		valid = false
	}

	if _, err := f.parseExpiration(); err != nil {
		f.err = err.Error()
		valid = false
	}

	if !valid {
		if f.err == "" {
			f.err = "Please fill in all required fields"
		}
		return
	}

	f.submitted = true
}

func (f *ItemForm) parseQuantity() (float64, error) {
	raw := strings.TrimSpace(f.quantity.Value())
	if raw == "" {
		return 1, nil
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || qty <= 0 {
		return 0, fmt.Errorf("quantity must be a positive number")
	}
	return qty, nil
}

// parseExpiration returns nil when all date fields are blank. A partial
// date is an error. The parsed date is pushed to the end of the day so an
// item entered as expiring today still counts as having a day left.
func (f *ItemForm) parseExpiration() (*time.Time, error) {
	year := strings.TrimSpace(f.expYear.Value())
	month := strings.TrimSpace(f.expMonth.Value())
	day := strings.TrimSpace(f.expDay.Value())

	if year == "" && month == "" && day == "" {
		return nil, nil
	}
	if year == "" || month == "" || day == "" {
		return nil, fmt.Errorf("expiration date is incomplete")
	}

	yearN, errY := strconv.Atoi(year)
	monthN, errM := strconv.Atoi(month)
	dayN, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return nil, fmt.Errorf("invalid expiration date")
	}

	// time.Date normalizes out-of-range components, so reject anything
	// that does not round-trip.
	parsed := time.Date(yearN, time.Month(monthN), dayN, 0, 0, 0, 0, time.Local)
	if parsed.Year() != yearN || parsed.Month() != time.Month(monthN) || parsed.Day() != dayN {
		return nil, fmt.Errorf("invalid expiration date")
	}

	exp := util.EndOfDay(parsed)
	return &exp, nil
}

// IsSubmitted returns true if the form was submitted.
func (f *ItemForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *ItemForm) IsCancelled() bool {
	return f.cancelled
}

// Data returns the validated form data.
func (f *ItemForm) Data() (ItemData, error) {
	qty, err := f.parseQuantity()
	if err != nil {
		return ItemData{}, err
	}
	exp, err := f.parseExpiration()
	if err != nil {
		return ItemData{}, err
	}

	return ItemData{
		Title:          strings.TrimSpace(f.title.Value()),
		Quantity:       qty,
		Note:           strings.TrimSpace(f.note.Value()),
		ExpirationDate: exp,
	}, nil
}

// Render renders the form with default width.
func (f *ItemForm) Render() string {
	return f.RenderResponsive(0)
}

// RenderResponsive renders the form adapted to the given terminal width.
func (f *ItemForm) RenderResponsive(width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Bold(true)

	// Adapt label width to terminal
	labelWidth := 14
	if width > 0 && width < 60 {
		labelWidth = 10
	}

	var b strings.Builder

	title := "ADD ITEM"
	if f.mode == FormModeEdit {
		title = "EDIT ITEM"
	}
	b.WriteString(titleStyle.Render("=== " + title + " ==="))
	b.WriteString("\n\n")

	b.WriteString(f.title.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.quantity.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.note.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n\n")

	// Expiration date as one composite line
	expLabel := lipgloss.NewStyle().Faint(true).Width(labelWidth)
	b.WriteString(expLabel.Render("Expires:"))
	b.WriteString(" ")
	b.WriteString(f.expYear.RenderWithLabelWidth(0))
	b.WriteString(" - ")
	b.WriteString(f.expMonth.RenderWithLabelWidth(0))
	b.WriteString(" - ")
	b.WriteString(f.expDay.RenderWithLabelWidth(0))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("(blank = never)"))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
	}

	b.WriteString("\n\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("Tab:Next  Ctrl+S:Save  Esc:Cancel"))
	} else {
		b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))
	}

	return b.String()
}
