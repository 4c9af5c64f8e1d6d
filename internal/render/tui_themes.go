package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// PitchTheme is the default dark theme with grass-green accents
	PitchTheme = TUITheme{
		Name:        "pitch",
		Description: "Pitch - Dark theme with grass green accents",

		Background: lipgloss.Color("#0f1a12"),
		Surface:    lipgloss.Color("#16261a"),
		Border:     lipgloss.Color("#2f5d3a"),

		Primary:   lipgloss.Color("#22c55e"), // Green, assistant
		Secondary: lipgloss.Color("#3b82f6"), // Blue, user
		Accent:    lipgloss.Color("#facc15"),
		Warning:   lipgloss.Color("#f59e0b"),
		Error:     lipgloss.Color("#ef4444"),

		Text:     lipgloss.Color("#e5e7eb"),
		TextDim:  lipgloss.Color("#6b7f70"),
		TextMute: lipgloss.Color("#3f4f43"),
	}

	// TokyoNightTheme is a dark theme based on Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#9ece6a"),
		Secondary: lipgloss.Color("#7aa2f7"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// DaylightTheme is a light theme for bright terminals
	DaylightTheme = TUITheme{
		Name:        "daylight",
		Description: "Daylight - Light theme for bright terminals",

		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f3f4f6"),
		Border:     lipgloss.Color("#bbf7d0"),

		Primary:   lipgloss.Color("#16a34a"),
		Secondary: lipgloss.Color("#2563eb"),
		Accent:    lipgloss.Color("#ca8a04"),
		Warning:   lipgloss.Color("#d97706"),
		Error:     lipgloss.Color("#dc2626"),

		Text:     lipgloss.Color("#1f2937"),
		TextDim:  lipgloss.Color("#6b7280"),
		TextMute: lipgloss.Color("#d1d5db"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = PitchTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
		return true
	}
	return false
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	switch name {
	case "pitch":
		return PitchTheme, true
	case "tokyonight":
		return TokyoNightTheme, true
	case "daylight":
		return DaylightTheme, true
	default:
		return TUITheme{}, false
	}
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		PitchTheme,
		TokyoNightTheme,
		DaylightTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
