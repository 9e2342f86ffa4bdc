package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour scheme of the chat interface.
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Sent and Received colour the two kinds of chat bubbles.
	Sent     lipgloss.Color
	Received lipgloss.Color
}

// DefaultTUITheme is used when no theme is configured or the name is unknown.
const DefaultTUITheme = "tokyonight"

var builtinThemes = []TUITheme{
	{
		Name:        "tokyonight",
		Description: "Tokyo Night, dark with blue accents",
		Background:  "#1a1b26", Surface: "#24283b", Border: "#414868",
		Primary: "#7aa2f7", Secondary: "#9ece6a", Accent: "#bb9af7",
		Warning: "#e0af68", Error: "#f7768e",
		Text: "#c0caf5", TextDim: "#565f89", TextMute: "#3b4261",
		Sent: "#2f3b66", Received: "#24283b",
	},
	{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, warm pastels",
		Background:  "#1e1e2e", Surface: "#313244", Border: "#45475a",
		Primary: "#89b4fa", Secondary: "#a6e3a1", Accent: "#cba6f7",
		Warning: "#f9e2af", Error: "#f38ba8",
		Text: "#cdd6f4", TextDim: "#6c7086", TextMute: "#45475a",
		Sent: "#3b3f5c", Received: "#313244",
	},
	{
		Name:        "nord",
		Description: "Nord, cool arctic tones",
		Background:  "#2e3440", Surface: "#3b4252", Border: "#4c566a",
		Primary: "#88c0d0", Secondary: "#a3be8c", Accent: "#b48ead",
		Warning: "#ebcb8b", Error: "#bf616a",
		Text: "#eceff4", TextDim: "#7b88a1", TextMute: "#4c566a",
		Sent: "#434c5e", Received: "#3b4252",
	},
	{
		Name:        "light",
		Description: "Light background for bright terminals",
		Background:  "#fafafa", Surface: "#eeeeee", Border: "#c0c0c0",
		Primary: "#2563eb", Secondary: "#16a34a", Accent: "#9333ea",
		Warning: "#b45309", Error: "#dc2626",
		Text: "#1f2937", TextDim: "#6b7280", TextMute: "#d1d5db",
		Sent: "#dbeafe", Received: "#eeeeee",
	},
}

var (
	themeMu      sync.RWMutex
	currentTheme = builtinThemes[0]
)

// GetTUITheme returns the active theme.
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates a theme by name and reports whether it exists.
func SetTUITheme(name string) bool {
	theme, ok := TUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// TUIThemeByName looks up a built-in theme.
func TUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range builtinThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// TUIThemeNames lists the built-in theme names.
func TUIThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}
