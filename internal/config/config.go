package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Theme        Theme
	ThemePreset  ThemePreset
	HighContrast bool
	ShowLineNo   bool
	TabSize      int
	HistoryLimit int
	GraphLimit   int
	GraphSpacing int
	Keybindings  Keybindings
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDark     ThemePreset = "dark"
	PresetLight    ThemePreset = "light"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Theme defines the color scheme for the application
type Theme struct {
	AddedBg      lipgloss.Color
	AddedFg      lipgloss.Color
	RemovedBg    lipgloss.Color
	RemovedFg    lipgloss.Color
	UnchangedFg  lipgloss.Color
	HunkFg       lipgloss.Color
	LineNumberFg lipgloss.Color
	BorderFg     lipgloss.Color
	FocusFg      lipgloss.Color
	SelectedBg   lipgloss.Color
	TitleFg      lipgloss.Color
	TitleBg      lipgloss.Color
	HelpFg       lipgloss.Color
	ErrorFg      lipgloss.Color
	EdgeFg       lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:  PresetDark,
		Theme:        ThemeForPreset(PresetDark, false),
		ShowLineNo:   true,
		TabSize:      4,
		HistoryLimit: 20,
		GraphLimit:   30,
		GraphSpacing: 2,
		Keybindings:  DefaultKeybindings(),
	}
}

// SetPreset switches the active theme.
func (c *Config) SetPreset(preset ThemePreset) {
	c.ThemePreset = preset
	c.Theme = ThemeForPreset(preset, c.HighContrast)
}

// ToggleAppearance flips between the light theme and a dark one.
func (c *Config) ToggleAppearance() {
	if c.ThemePreset == PresetLight {
		c.SetPreset(PresetDark)
		return
	}
	c.SetPreset(PresetLight)
}

// IsDark reports whether the active preset uses a dark background.
func (c *Config) IsDark() bool {
	return c.ThemePreset != PresetLight
}

// ParsePreset validates a preset name.
func ParsePreset(raw string) (ThemePreset, error) {
	switch p := ThemePreset(raw); p {
	case PresetDark, PresetLight, PresetSolarize, PresetDracula:
		return p, nil
	case "default":
		return PresetDark, nil
	default:
		return "", fmt.Errorf("unknown theme: %s", raw)
	}
}

// DarkTheme returns the default dark color theme
func DarkTheme() Theme {
	return Theme{
		AddedBg:      lipgloss.Color("#2D4A2B"),
		AddedFg:      lipgloss.Color("#A8E6A3"),
		RemovedBg:    lipgloss.Color("#4A2D2D"),
		RemovedFg:    lipgloss.Color("#E6A3A3"),
		UnchangedFg:  lipgloss.Color("#B0B0B0"),
		HunkFg:       lipgloss.Color("#7FB4CA"),
		LineNumberFg: lipgloss.Color("#666666"),
		BorderFg:     lipgloss.Color("#3A3A3A"),
		FocusFg:      lipgloss.Color("#8787D7"),
		SelectedBg:   lipgloss.Color("#303050"),
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#5F5FAF"),
		HelpFg:       lipgloss.Color("#888888"),
		ErrorFg:      lipgloss.Color("#FF6B6B"),
		EdgeFg:       lipgloss.Color("#808080"),
	}
}

// LightTheme returns a theme for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		AddedBg:      lipgloss.Color("#DDF4D8"),
		AddedFg:      lipgloss.Color("#1E5E1A"),
		RemovedBg:    lipgloss.Color("#F8DADA"),
		RemovedFg:    lipgloss.Color("#8A1C1C"),
		UnchangedFg:  lipgloss.Color("#303030"),
		HunkFg:       lipgloss.Color("#1F5F8B"),
		LineNumberFg: lipgloss.Color("#9A9A9A"),
		BorderFg:     lipgloss.Color("#C8C8C8"),
		FocusFg:      lipgloss.Color("#5F5FAF"),
		SelectedBg:   lipgloss.Color("#E4E4F4"),
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#5F5FAF"),
		HelpFg:       lipgloss.Color("#666666"),
		ErrorFg:      lipgloss.Color("#C0392B"),
		EdgeFg:       lipgloss.Color("#A0A0A0"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetLight:
		return applyContrast(LightTheme(), highContrast)
	case PresetSolarize:
		t := DarkTheme()
		t.AddedBg, t.AddedFg = "#073642", "#859900"
		t.RemovedBg, t.RemovedFg = "#3C1F1E", "#DC322F"
		t.UnchangedFg, t.HunkFg = "#93A1A1", "#268BD2"
		t.LineNumberFg, t.BorderFg = "#586E75", "#657B83"
		t.TitleFg, t.TitleBg = "#EEE8D5", "#586E75"
		t.HelpFg, t.SelectedBg = "#93A1A1", "#073642"
		return applyContrast(t, highContrast)
	case PresetDracula:
		t := DarkTheme()
		t.AddedBg, t.AddedFg = "#244443", "#50FA7B"
		t.RemovedBg, t.RemovedFg = "#402036", "#FF79C6"
		t.UnchangedFg, t.HunkFg = "#F8F8F2", "#8BE9FD"
		t.LineNumberFg, t.BorderFg = "#6272A4", "#44475A"
		t.TitleFg, t.TitleBg = "#F8F8F2", "#6272A4"
		t.HelpFg, t.SelectedBg = "#BD93F9", "#44475A"
		return applyContrast(t, highContrast)
	default:
		return applyContrast(DarkTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"quit":         {"ctrl+c", "ctrl+q"},
		"open":         {"ctrl+o"},
		"refresh":      {"ctrl+r", "f5"},
		"toggle_theme": {"ctrl+t"},
		"about":        {"f1"},
		"menu":         {"f10", "m"},
		"status":       {"ctrl+g"},
		"help":         {"f2"},
		"commit":       {"ctrl+s"},
		"next_pane":    {"tab"},
		"prev_pane":    {"shift+tab"},
		"toggle_check": {" ", "x"},
		"select":       {"enter"},
		"up":           {"k", "up"},
		"down":         {"j", "down"},
		"page_down":    {"pgdown"},
		"page_up":      {"pgup"},
		"go_top":       {"home"},
		"go_bottom":    {"end"},
		"copy_diff":    {"y"},
		"export_diff":  {"e"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

// LoadKeymap reads a YAML file of action: [keys] overrides and merges it
// with the defaults.
func LoadKeymap(path string) (Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	var overrides Keybindings
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse keymap %s: %w", path, err)
	}
	for action := range overrides {
		if _, ok := DefaultKeybindings()[action]; !ok {
			return nil, fmt.Errorf("keymap %s: unknown action %q", path, action)
		}
	}
	return MergeKeybindings(overrides), nil
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		AddedBg:      adjustBrightness(theme.AddedBg, 0.15),
		AddedFg:      adjustBrightness(theme.AddedFg, 0.25),
		RemovedBg:    adjustBrightness(theme.RemovedBg, 0.15),
		RemovedFg:    adjustBrightness(theme.RemovedFg, 0.25),
		UnchangedFg:  adjustBrightness(theme.UnchangedFg, 0.2),
		HunkFg:       adjustBrightness(theme.HunkFg, 0.2),
		LineNumberFg: adjustBrightness(theme.LineNumberFg, 0.2),
		BorderFg:     adjustBrightness(theme.BorderFg, 0.2),
		FocusFg:      adjustBrightness(theme.FocusFg, 0.2),
		SelectedBg:   adjustBrightness(theme.SelectedBg, 0.15),
		TitleFg:      adjustBrightness(theme.TitleFg, 0.2),
		TitleBg:      adjustBrightness(theme.TitleBg, 0.2),
		HelpFg:       adjustBrightness(theme.HelpFg, 0.2),
		ErrorFg:      adjustBrightness(theme.ErrorFg, 0.2),
		EdgeFg:       adjustBrightness(theme.EdgeFg, 0.2),
	}
}

// adjustBrightness raises the HSL lightness of a hex colour by factor.
// Non-hex values are returned unchanged.
func adjustBrightness(c lipgloss.Color, factor float64) lipgloss.Color {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, s, l := parsed.Hsl()
	l *= 1 + factor
	if l > 1 {
		l = 1
	}
	return lipgloss.Color(colorful.Hsl(h, s, l).Clamped().Hex())
}
