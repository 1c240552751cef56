// Package ui provides the visual styling for the tweetgen widget.
// Zinc palette with light/dark mode support, plus the sparkle burst drawn
// around the generate button.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#ffffff")
	LightForeground = lipgloss.Color("#09090b")
	LightPrimary    = lipgloss.Color("#18181b")
	LightOnPrimary  = lipgloss.Color("#fafafa")
	LightMuted      = lipgloss.Color("#71717a")
	LightCard       = lipgloss.Color("#f4f4f5")
	LightBorder     = lipgloss.Color("#e4e4e7")

	// Dark Mode Colors (default)
	DarkBackground = lipgloss.Color("#09090b")
	DarkForeground = lipgloss.Color("#fafafa")
	DarkPrimary    = lipgloss.Color("#fafafa")
	DarkOnPrimary  = lipgloss.Color("#18181b")
	DarkMuted      = lipgloss.Color("#a1a1aa")
	DarkCard       = lipgloss.Color("#27272a")
	DarkBorder     = lipgloss.Color("#3f3f46")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#22c55e")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	OnPrimary  lipgloss.Color
	Muted      lipgloss.Color
	Card       lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		OnPrimary:  LightOnPrimary,
		Muted:      LightMuted,
		Card:       LightCard,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		OnPrimary:  DarkOnPrimary,
		Muted:      DarkMuted,
		Card:       DarkCard,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme guesses from COLORFGBG and falls back to dark.
func DetectTheme() Theme {
	// Format is "foreground;background"; 7 and 9-15 are light backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) >= 2 {
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if bg == 7 || (bg >= 9 && bg <= 15) {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// ThemeByName maps the ui.theme config value to a Theme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "auto":
		return DetectTheme()
	default:
		return DarkTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style

	// Tweet card
	Tweet      lipgloss.Style
	CopyHint   lipgloss.Style
	CopiedHint lipgloss.Style

	// Generate button
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			MarginBottom(1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Tweet: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Card).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		CopyHint: lipgloss.NewStyle().
			Foreground(theme.Muted),

		CopiedHint: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.OnPrimary).
			Background(theme.Primary).
			Padding(0, 3).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Card).
			Padding(0, 3),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
