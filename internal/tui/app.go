package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pantryterm/pantry/internal/barcode"
	"github.com/pantryterm/pantry/internal/config"
	"github.com/pantryterm/pantry/internal/database"
	"github.com/pantryterm/pantry/internal/notify"
	"github.com/pantryterm/pantry/internal/selection"
	"github.com/pantryterm/pantry/internal/services/inventory"
	"github.com/pantryterm/pantry/internal/services/settings"
	expviews "github.com/pantryterm/pantry/internal/tui/views/expiring"
	itemviews "github.com/pantryterm/pantry/internal/tui/views/items"
	"github.com/pantryterm/pantry/internal/util"
	"github.com/pantryterm/pantry/internal/views"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Module represents a view module in the application.
type Module string

const (
	ModuleItems    Module = "items"
	ModuleExpiring Module = "expiring"
	ModuleSettings Module = "settings"
	ModuleHelp     Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	db     *database.DB
	config *config.Config
	clock  *util.Clock

	// Services
	inventorySvc *inventory.Service
	settingsSvc  *settings.Service
	engine       *views.Engine
	selected     *selection.Controller
	reminders    *notify.Service // nil when reminders are disabled
	lookup       barcode.Client  // nil when barcode lookup is disabled

	// Views
	itemsView    *itemviews.ListView
	expiringView *expviews.ListView
	itemForm     *itemviews.ItemForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Pending delete confirmation; empty when no dialog is open
	deleteIDs []string

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool // Show detail view instead of list
	showForm       bool // Show add/edit form
	searchMode     bool // Search input mode
	searchInput    string
	barcodeMode    bool // Barcode input mode
	barcodeInput   string

	// Alerts
	alerts []Alert

	// Derived counts shown in the header
	expiringCount int

	// Snapshot delivery from the view engine. Debounced search commits
	// land on a timer goroutine, so they are funneled through this
	// channel back into the Bubble Tea update loop.
	snapshots chan views.Snapshot
}

// Alert represents a status line notice.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent periodically to update the UI.
type tickMsg time.Time

// New creates a new App instance and wires the services together.
func New(db *database.DB, cfg *config.Config, clock *util.Clock) *App {
	invSvc := inventory.NewService(db.DB, clock, cfg.Tracker.SortOrder)
	setSvc := settings.NewService(db.DB, cfg)

	engine := views.NewEngine(clock, setSvc.ThresholdDays())
	if cfg.Tracker.SearchDebounceMS > 0 {
		engine.SetDebounce(time.Duration(cfg.Tracker.SearchDebounceMS) * time.Millisecond)
	}

	a := &App{
		db:            db,
		config:        cfg,
		clock:         clock,
		inventorySvc:  invSvc,
		settingsSvc:   setSvc,
		engine:        engine,
		selected:      selection.NewController(),
		itemsView:     itemviews.NewListView(),
		expiringView:  expviews.NewListView(),
		theme:         NewTheme(setSvc.Theme()),
		keys:          DefaultKeyMap(),
		currentModule: ModuleItems,
		alerts:        []Alert{},
		snapshots:     make(chan views.Snapshot, 16),
	}

	a.itemsView.SetNow(clock.Now())
	a.itemsView.SetThreshold(setSvc.ThresholdDays())
	a.itemsView.SetMarked(a.selected.IsSelected)
	a.expiringView.SetNow(clock.Now())

	// Every inventory change flows into the engine, and every committed
	// engine recompute flows back as a snapshot message.
	invSvc.Subscribe(engine.SetItems)
	engine.Subscribe(func(s views.Snapshot) {
		select {
		case a.snapshots <- s:
		default:
		}
	})

	setSvc.OnThresholdChange(func(days int) {
		engine.SetThreshold(days)
		if a.reminders != nil {
			a.reminders.RescheduleAll(invSvc.Items(), days)
		}
	})

	return a
}

// AttachReminders connects the reminder scheduler to the inventory.
func (a *App) AttachReminders(r *notify.Service) {
	a.reminders = r
	a.inventorySvc.AttachReminders(r, a.settingsSvc)
}

// AttachBarcode enables UPC lookups from the add-item flow.
func (a *App) AttachBarcode(c barcode.Client) {
	a.lookup = c
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		a.loadData(),
		a.waitForSnapshot(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadData loads settings and the inventory from the database.
func (a *App) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := a.settingsSvc.Load(ctx); err != nil {
			return dataLoadedMsg{err: err}
		}
		if err := a.inventorySvc.Load(ctx); err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{}
	}
}

// waitForSnapshot blocks until the engine commits a recompute.
func (a *App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-a.snapshots)
	}
}

type dataLoadedMsg struct {
	err error
}

type snapshotMsg views.Snapshot

type reloadedMsg struct {
	err error
}

type itemSavedMsg struct {
	err error
}

type itemsDeletedMsg struct {
	count int
	err   error
}

type settingsChangedMsg struct {
	err error
}

type barcodeMsg struct {
	product *barcode.Product
	err     error
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case tickMsg:
		a.itemsView.SetNow(a.clock.Now())
		a.expiringView.SetNow(a.clock.Now())
		return a, tickCmd()

	case snapshotMsg:
		a.applySnapshot(views.Snapshot(msg))
		return a, a.waitForSnapshot()

	case dataLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Load failed: "+msg.err.Error())
			return a, nil
		}
		// Apply persisted settings now that they are known.
		a.theme = NewTheme(a.settingsSvc.Theme())
		a.itemsView.SetThreshold(a.settingsSvc.ThresholdDays())
		a.engine.SetThreshold(a.settingsSvc.ThresholdDays())
		if a.reminders != nil {
			a.reminders.RescheduleAll(a.inventorySvc.Items(), a.settingsSvc.ThresholdDays())
		}
		return a, nil

	case reloadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Reload failed: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Inventory reloaded")
		}
		return a, nil

	case itemSavedMsg:
		a.showForm = false
		a.itemForm = nil
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to save item: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Item saved")
		}
		return a, nil

	case itemsDeletedMsg:
		a.showDetail = false
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Delete failed: "+msg.err.Error())
		} else if msg.count == 1 {
			a.AddAlert(AlertInfo, "Item deleted")
		} else {
			a.AddAlert(AlertInfo, fmt.Sprintf("%d items deleted", msg.count))
		}
		a.selected.Clear()
		a.itemsView.Refresh()
		return a, nil

	case settingsChangedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Settings not saved: "+msg.err.Error())
		} else {
			a.theme = NewTheme(a.settingsSvc.Theme())
			a.itemsView.SetThreshold(a.settingsSvc.ThresholdDays())
		}
		return a, nil

	case barcodeMsg:
		a.barcodeMode = false
		a.barcodeInput = ""
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Barcode lookup failed: "+msg.err.Error())
			return a, nil
		}
		// Open the add form prefilled with the product data.
		a.itemForm = itemviews.NewItemForm(itemviews.FormModeAdd)
		note := msg.product.Brand
		if note == "" {
			note = msg.product.Category
		}
		a.itemForm.Prefill(msg.product.Label, note)
		a.showForm = true
		a.currentModule = ModuleItems
		return a, nil
	}

	return a, nil
}

// applySnapshot pushes a committed engine snapshot into the views.
func (a *App) applySnapshot(s views.Snapshot) {
	liveIDs := make([]string, len(s.Items))
	for i, it := range s.Items {
		liveIDs[i] = it.ID
	}
	a.selected.Prune(liveIDs)

	a.itemsView.SetThreshold(s.Threshold)
	if s.SearchText != "" {
		a.itemsView.SetItems(s.SearchResults, s.SearchText)
	} else {
		a.itemsView.SetItems(s.Items, "")
	}
	a.expiringView.SetItems(s.ExpiringSoon, s.Threshold)
	a.expiringCount = len(s.ExpiringSoon)
}

// updateViewDimensions resizes the views for the current terminal size.
func (a *App) updateViewDimensions() {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)
	contentHeight := ContentHeight(a.height, 6)

	rows := contentHeight - 8
	if rows < 5 {
		rows = 5
	}
	a.itemsView.SetVisibleRows(rows)
	a.expiringView.SetVisibleRows(rows)

	specs := []ColumnSpec{
		{MinWidth: 16, Weight: 2, Priority: 4},   // title
		{Fixed: 6, Priority: 3},                  // qty
		{MinWidth: 12, Weight: 1.5, Priority: 1}, // note
		{Fixed: 12, Priority: 3},                 // expires
		{Fixed: 13, Priority: 2},                 // status
	}
	a.itemsView.SetColumnWidths(CalculateColumnWidths(specs, contentWidth, 3))
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	// Delete confirmation modal
	if len(a.deleteIDs) > 0 {
		switch msg.String() {
		case "y", "Y", "enter":
			ids := a.deleteIDs
			a.deleteIDs = nil
			return a, a.deleteItems(ids)
		case "n", "N", "esc":
			a.deleteIDs = nil
			return a, nil
		}
		return a, nil
	}

	// Handle form mode BEFORE global keys - form needs all input
	if a.currentModule == ModuleItems && a.showForm {
		return a.handleFormKeys(msg)
	}

	// Handle search and barcode modes BEFORE global keys - they need text input
	if a.currentModule == ModuleItems && a.searchMode {
		return a.handleSearchKeys(msg)
	}
	if a.currentModule == ModuleItems && a.barcodeMode {
		return a.handleBarcodeKeys(msg)
	}

	// Global key bindings (only when not in input mode)
	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	// Function key navigation (always available)
	if a.keys.IsFunctionKey(msg) {
		module := a.keys.GetFunctionKeyModule(msg)
		switch module {
		case "quit":
			a.showConfirm = true
		case "help":
			a.previousModule = a.currentModule
			a.currentModule = ModuleHelp
		case "items":
			a.currentModule = ModuleItems
			a.showDetail = false
		case "expiring":
			a.currentModule = ModuleExpiring
			a.showDetail = false
		case "settings":
			a.currentModule = ModuleSettings
			a.showDetail = false
		}
		return a, nil
	}

	// Back navigation (only when not in input mode)
	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	// Module-specific key handling
	switch a.currentModule {
	case ModuleItems:
		return a.handleItemsKeys(msg)
	case ModuleExpiring:
		return a.handleExpiringKeys(msg)
	case ModuleSettings:
		return a.handleSettingsKeys(msg)
	}

	return a, nil
}

// handleItemsKeys handles key presses in the items module.
// Note: form, search, and barcode modes are handled before this is called.
func (a *App) handleItemsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			item := a.itemsView.SelectedItem()
			if item != nil {
				a.itemForm = itemviews.NewItemForm(itemviews.FormModeEdit)
				a.itemForm.SetItem(item)
				a.showForm = true
				a.showDetail = false
			}
		case "d":
			item := a.itemsView.SelectedItem()
			if item != nil {
				a.deleteIDs = []string{item.ID}
			}
		}
		return a, nil
	}

	// In list view
	switch msg.String() {
	case "up", "k":
		a.itemsView.MoveUp()
	case "down", "j":
		a.itemsView.MoveDown()
	case "enter":
		if a.itemsView.SelectedItem() != nil {
			a.showDetail = true
		}
	case "pgup":
		a.itemsView.PrevPage()
	case "pgdown":
		a.itemsView.NextPage()
	case "a":
		a.itemForm = itemviews.NewItemForm(itemviews.FormModeAdd)
		a.showForm = true
	case "e":
		item := a.itemsView.SelectedItem()
		if item != nil {
			a.itemForm = itemviews.NewItemForm(itemviews.FormModeEdit)
			a.itemForm.SetItem(item)
			a.showForm = true
		}
	case "d":
		item := a.itemsView.SelectedItem()
		if item != nil {
			a.deleteIDs = []string{item.ID}
		}
	case " ":
		item := a.itemsView.SelectedItem()
		if item != nil {
			a.selected.Toggle(item.ID)
			a.itemsView.Refresh()
			a.itemsView.MoveDown()
		}
	case "x":
		if a.selected.Count() > 0 {
			a.deleteIDs = a.selected.IDs()
		}
	case "/", "s":
		a.searchMode = true
		a.searchInput = a.engine.SearchText()
	case "b":
		if a.lookup == nil {
			a.AddAlert(AlertInfo, "Barcode lookup is not configured")
		} else {
			a.barcodeMode = true
			a.barcodeInput = ""
		}
	case "r":
		return a, a.reload()
	}

	return a, nil
}

// handleExpiringKeys handles key presses in the expiring module.
func (a *App) handleExpiringKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.expiringView.MoveUp()
	case "down", "j":
		a.expiringView.MoveDown()
	}
	return a, nil
}

// handleSettingsKeys handles key presses in the settings module.
func (a *App) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "+", "=":
		return a, a.setThreshold(a.settingsSvc.ThresholdDays() + 1)
	case "-", "_":
		days := a.settingsSvc.ThresholdDays() - 1
		if days < settings.MinThresholdDays {
			a.AddAlert(AlertWarning, fmt.Sprintf("Threshold cannot go below %d day", settings.MinThresholdDays))
			return a, nil
		}
		return a, a.setThreshold(days)
	case "t":
		return a, a.setTheme(nextTheme(a.settingsSvc.Theme()))
	case "R":
		return a, a.resetDefaults()
	}
	return a, nil
}

// nextTheme cycles light -> dark -> system.
func nextTheme(t config.Theme) config.Theme {
	switch t {
	case config.ThemeLight:
		return config.ThemeDark
	case config.ThemeDark:
		return config.ThemeSystem
	default:
		return config.ThemeLight
	}
}

// handleFormKeys handles key presses in form mode.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.itemForm.HandleKey(key)

	if a.itemForm.IsCancelled() {
		a.showForm = false
		a.itemForm = nil
		return a, nil
	}

	if a.itemForm.IsSubmitted() {
		return a, a.saveItem()
	}

	return a, nil
}

// handleSearchKeys handles key presses in search mode. Every keystroke
// feeds the engine, which debounces before committing the search.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		a.searchMode = false
		a.searchInput = ""
		a.engine.SetSearchText("")
		return a, nil
	case "enter":
		// Keep the filter, leave input mode
		a.searchMode = false
		return a, nil
	case "backspace":
		if len(a.searchInput) > 0 {
			a.searchInput = a.searchInput[:len(a.searchInput)-1]
			a.engine.SetSearchText(a.searchInput)
		}
	default:
		if len(key) == 1 {
			a.searchInput += key
			a.engine.SetSearchText(a.searchInput)
		}
	}

	return a, nil
}

// handleBarcodeKeys handles key presses in barcode input mode.
func (a *App) handleBarcodeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		a.barcodeMode = false
		a.barcodeInput = ""
		return a, nil
	case "enter":
		if a.barcodeInput == "" {
			a.barcodeMode = false
			return a, nil
		}
		return a, a.lookupBarcode(a.barcodeInput)
	case "backspace":
		if len(a.barcodeInput) > 0 {
			a.barcodeInput = a.barcodeInput[:len(a.barcodeInput)-1]
		}
	default:
		if len(key) == 1 && key >= "0" && key <= "9" {
			a.barcodeInput += key
		}
	}

	return a, nil
}

// saveItem persists the item from the form.
func (a *App) saveItem() tea.Cmd {
	form := a.itemForm
	return func() tea.Msg {
		data, err := form.Data()
		if err != nil {
			return itemSavedMsg{err: err}
		}

		ctx := context.Background()
		if id := form.EditingID(); id != "" {
			_, err = a.inventorySvc.Replace(ctx, id, inventory.UpdateItemInput{
				Title:          data.Title,
				Quantity:       data.Quantity,
				Note:           data.Note,
				ExpirationDate: data.ExpirationDate,
			})
		} else {
			_, err = a.inventorySvc.Add(ctx, inventory.AddItemInput{
				Title:          data.Title,
				Quantity:       data.Quantity,
				Note:           data.Note,
				ExpirationDate: data.ExpirationDate,
			})
		}

		return itemSavedMsg{err: err}
	}
}

// deleteItems removes the given items from the inventory.
func (a *App) deleteItems(ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if len(ids) == 1 {
			err = a.inventorySvc.Remove(ctx, ids[0])
		} else {
			err = a.inventorySvc.RemoveMany(ctx, ids)
		}
		return itemsDeletedMsg{count: len(ids), err: err}
	}
}

// reload re-reads the inventory from the database.
func (a *App) reload() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: a.inventorySvc.Reload(context.Background())}
	}
}

// setThreshold persists a new expiring-soon threshold.
func (a *App) setThreshold(days int) tea.Cmd {
	return func() tea.Msg {
		return settingsChangedMsg{err: a.settingsSvc.SetThresholdDays(context.Background(), days)}
	}
}

// setTheme persists a new display theme.
func (a *App) setTheme(theme config.Theme) tea.Cmd {
	return func() tea.Msg {
		return settingsChangedMsg{err: a.settingsSvc.SetTheme(context.Background(), theme)}
	}
}

// resetDefaults restores the default settings.
func (a *App) resetDefaults() tea.Cmd {
	return func() tea.Msg {
		return settingsChangedMsg{err: a.settingsSvc.ResetDefaults(context.Background())}
	}
}

// lookupBarcode resolves a UPC via the barcode client.
func (a *App) lookupBarcode(code string) tea.Cmd {
	return func() tea.Msg {
		product, err := a.lookup.Lookup(context.Background(), code)
		return barcodeMsg{product: product, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Pantry shutting down...")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := a.height - 6 // header, alert, footer
	switch {
	case a.showConfirm:
		b.WriteString(a.renderConfirmDialog(contentHeight))
	case len(a.deleteIDs) > 0:
		b.WriteString(a.renderDeleteDialog(contentHeight))
	default:
		b.WriteString(a.renderContent(contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("PANTRY v%s", Version)
	if GetBreakpoint(a.width) == BreakpointNarrow {
		title = "PANTRY"
	}

	counts := fmt.Sprintf("ITEMS: %d | SOON: %d", a.inventorySvc.Count(), a.expiringCount)

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(counts) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(counts)

	separator := a.theme.DrawDoubleLine(a.width)

	return header + "\n" + separator
}

// renderAlertBar renders the time and latest alert line.
func (a *App) renderAlertBar() string {
	now := a.clock.Now()
	timeStr := now.Format(a.config.Display.DateFormat + " " + a.config.Display.TimeFormat)

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("CRITICAL: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Ready")
	}

	timeDisplay := a.theme.Value.Render(timeStr)
	divider := a.theme.StatusDivider.Render()

	return timeDisplay + divider + alertText
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	content := a.getModuleContent()

	// Constrain content width to MaxContentWidth
	contentWidth := a.width
	if contentWidth > MaxContentWidth {
		contentWidth = MaxContentWidth
	}

	// Center the content container within the terminal
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent() string {
	switch a.currentModule {
	case ModuleExpiring:
		return a.expiringView.Render(a.width, a.height-6)
	case ModuleSettings:
		return a.renderSettings()
	case ModuleHelp:
		return a.renderHelp()
	default:
		return a.renderItems()
	}
}

// renderItems renders the items module.
func (a *App) renderItems() string {
	// Show form if active
	if a.showForm && a.itemForm != nil {
		return a.itemForm.RenderResponsive(a.width)
	}

	// Show detail if active
	if a.showDetail {
		return a.itemsView.RenderDetail(a.itemsView.SelectedItem())
	}

	// Show input bar if in search or barcode mode
	var inputBar string
	if a.searchMode {
		inputBar = a.theme.Label.Render("SEARCH: ") +
			a.theme.Accent.Render(a.searchInput) +
			a.theme.Accent.Render("_") + "\n\n"
	} else if a.barcodeMode {
		inputBar = a.theme.Label.Render("BARCODE: ") +
			a.theme.Accent.Render(a.barcodeInput) +
			a.theme.Accent.Render("_") + "\n\n"
	}

	return inputBar + a.itemsView.Render(a.width, a.height-6)
}

// renderSettings renders the settings module.
func (a *App) renderSettings() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ SETTINGS ═══"))
	b.WriteString("\n\n")

	label := a.theme.Label.Width(26)

	b.WriteString(label.Render("Expiring-soon threshold:"))
	b.WriteString(a.theme.Value.Render(fmt.Sprintf(" %d days", a.settingsSvc.ThresholdDays())))
	b.WriteString("\n")

	b.WriteString(label.Render("Theme:"))
	b.WriteString(a.theme.Value.Render(" " + string(a.settingsSvc.Theme())))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Muted.Render(fmt.Sprintf(
		"Items expiring within the threshold appear in the Expiring view\nand trigger reminders. Minimum threshold is %d day.",
		settings.MinThresholdDays)))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Label.Render("+/-:Adjust Threshold  t:Cycle Theme  R:Restore Defaults"))

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Items"},
		{"F3", "Expiring Soon"},
		{"F4", "Settings"},
		{"F10", "Quit"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("ITEMS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Navigate"},
		{"Enter", "Details"},
		{"a", "Add item"},
		{"e", "Edit item"},
		{"d", "Delete item"},
		{"Space", "Mark for bulk delete"},
		{"x", "Delete marked items"},
		{"/", "Search"},
		{"b", "Barcode lookup"},
		{"r", "Reload"},
		{"Esc", "Back/Cancel"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderDeleteDialog renders the delete confirmation dialog.
func (a *App) renderDeleteDialog(height int) string {
	prompt := "Delete this item?"
	if len(a.deleteIDs) > 1 {
		prompt = fmt.Sprintf("Delete %d marked items?", len(a.deleteIDs))
	}

	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM DELETE") + "\n\n" +
			a.theme.Base.Render(prompt) + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	help := a.keys.StatusBarHelp()
	return separator + "\n" + a.theme.Footer.Render(help)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
