// Package tui provides the terminal user interface for Pantry.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pantryterm/pantry/internal/config"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor   lipgloss.TerminalColor
	SecondaryColor lipgloss.TerminalColor
	AccentColor    lipgloss.TerminalColor
	SurfaceColor   lipgloss.TerminalColor
	ErrorColor     lipgloss.TerminalColor
	WarningColor   lipgloss.TerminalColor
	SuccessColor   lipgloss.TerminalColor
	MutedColor     lipgloss.TerminalColor

	// Base styles
	Base lipgloss.Style
	Bold lipgloss.Style

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Selected  lipgloss.Style
	Focused   lipgloss.Style
	Disabled  lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertCrit lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	// Form styles
	FormLabel lipgloss.Style
	FormInput lipgloss.Style
	FormError lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme for the configured appearance. The system
// theme uses adaptive colors so the palette follows the terminal background.
func NewTheme(appearance config.Theme) *Theme {
	switch appearance {
	case config.ThemeLight:
		return newLightTheme()
	case config.ThemeDark:
		return newDarkTheme()
	default:
		return newSystemTheme()
	}
}

func newDarkTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#E8E3D3"), // primary
		lipgloss.Color("#A0A0A0"), // secondary
		lipgloss.Color("#7FD0A0"), // accent
		lipgloss.Color("#1A1A1A"), // surface
		lipgloss.Color("#5A5A5A"), // muted
		lipgloss.Color("#FF6B6B"), // error
		lipgloss.Color("#FFB454"), // warning
		lipgloss.Color("#7FD0A0"), // success
	)
}

func newLightTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#1C1C1C"),
		lipgloss.Color("#555555"),
		lipgloss.Color("#1A7A4A"),
		lipgloss.Color("#F2EFE5"),
		lipgloss.Color("#9A9A9A"),
		lipgloss.Color("#C0392B"),
		lipgloss.Color("#B07400"),
		lipgloss.Color("#1A7A4A"),
	)
}

func newSystemTheme() *Theme {
	return buildTheme(
		lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#E8E3D3"},
		lipgloss.AdaptiveColor{Light: "#555555", Dark: "#A0A0A0"},
		lipgloss.AdaptiveColor{Light: "#1A7A4A", Dark: "#7FD0A0"},
		lipgloss.AdaptiveColor{Light: "#F2EFE5", Dark: "#1A1A1A"},
		lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#5A5A5A"},
		lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"},
		lipgloss.AdaptiveColor{Light: "#B07400", Dark: "#FFB454"},
		lipgloss.AdaptiveColor{Light: "#1A7A4A", Dark: "#7FD0A0"},
	)
}

func buildTheme(primary, secondary, accent, surface, muted, errorColor, warningColor, successColor lipgloss.TerminalColor) *Theme {
	t := &Theme{
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		AccentColor:    accent,
		SurfaceColor:   surface,
		MutedColor:     muted,
		ErrorColor:     errorColor,
		WarningColor:   warningColor,
		SuccessColor:   successColor,
	}

	t.Base = lipgloss.NewStyle().Foreground(primary)
	t.Bold = t.Base.Bold(true)

	// Color styles for direct use
	t.Primary = lipgloss.NewStyle().Foreground(primary)
	t.Secondary = lipgloss.NewStyle().Foreground(secondary)
	t.Accent = lipgloss.NewStyle().Foreground(accent)
	t.Error = lipgloss.NewStyle().Foreground(errorColor)
	t.Warning = lipgloss.NewStyle().Foreground(warningColor)
	t.Success = lipgloss.NewStyle().Foreground(successColor)
	t.Muted = lipgloss.NewStyle().Foreground(muted)

	// Header - top bar with app info
	t.Header = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		Padding(0, 1)

	// Footer - bottom status bar
	t.Footer = lipgloss.NewStyle().
		Foreground(secondary).
		Padding(0, 1)

	// Title - main headings
	t.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Padding(0, 1)

	// Subtitle - secondary headings
	t.Subtitle = lipgloss.NewStyle().
		Foreground(primary).
		Padding(0, 1)

	// Label - field labels
	t.Label = lipgloss.NewStyle().
		Foreground(secondary)

	// Value - field values
	t.Value = lipgloss.NewStyle().
		Foreground(primary)

	// Box - bordered container
	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	// Selected - highlighted item
	t.Selected = lipgloss.NewStyle().
		Foreground(surface).
		Background(accent).
		Bold(true)

	// Focused - focused input
	t.Focused = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	// Disabled - inactive elements
	t.Disabled = lipgloss.NewStyle().
		Foreground(muted)

	// Alerts
	t.Alert = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	t.AlertCrit = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	// Table styles
	t.TableHeader = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.TableRow = lipgloss.NewStyle().
		Foreground(primary)

	t.TableRowAlt = lipgloss.NewStyle().
		Foreground(secondary)

	// Form styles
	t.FormLabel = lipgloss.NewStyle().
		Foreground(secondary).
		Width(20)

	t.FormInput = lipgloss.NewStyle().
		Foreground(primary)

	t.FormError = lipgloss.NewStyle().
		Foreground(errorColor)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(secondary).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(muted).
		SetString(" │ ")

	return t
}

// Box characters for drawing
const (
	BoxHorizontal = "─"
	BoxVertical   = "│"

	BoxDoubleHorizontal = "═"
)

// DrawBox draws a box with the given content.
func (t *Theme) DrawBox(content string, width int) string {
	return t.Box.Width(width).Render(content)
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	line := ""
	for i := 0; i < width; i++ {
		line += BoxHorizontal
	}
	return t.Secondary.Render(line)
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	line := ""
	for i := 0; i < width; i++ {
		line += BoxDoubleHorizontal
	}
	return t.Primary.Render(line)
}
