package charts

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme - colors of one chart variant
type Theme struct {
	Name       string
	Background string   // canvas fill
	Foreground string   // title and record labels
	Secondary  string   // duration labels
	Palette    []string // bar colors, bottom bar first
}

var (
	// Light - white background, blue bars
	Light = Theme{
		Name:       "light",
		Background: "#FFFFFF",
		Foreground: "#000000",
		Secondary:  "#000000",
		Palette:    []string{"#0066CC", "#3388DD", "#55AAEE", "#77BBFF", "#99CCFF"},
	}
	// Dark - #1e1e1e background, teal bars
	Dark = Theme{
		Name:       "dark",
		Background: "#1E1E1E",
		Foreground: "#FFFFFF",
		Secondary:  "#CCCCCC",
		Palette:    []string{"#4ECDC4", "#6EDDD4", "#8EEEE4", "#AEFFF4", "#CEFFFF"},
	}
)

// ThemeByName resolves "light" or "dark".
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// WithPalette returns a copy of t using palette; an empty palette keeps t's own.
func (t Theme) WithPalette(palette []string) Theme {
	if len(palette) == 0 {
		return t
	}
	t.Palette = append([]string(nil), palette...)
	return t
}

// Validate checks every color of the theme.
func (t Theme) Validate() error {
	if len(t.Palette) == 0 {
		return fmt.Errorf("theme %s: empty palette", t.Name)
	}
	for _, c := range append([]string{t.Background, t.Foreground, t.Secondary}, t.Palette...) {
		if _, err := parseColor(c); err != nil {
			return fmt.Errorf("theme %s: %w", t.Name, err)
		}
	}
	return nil
}

// parseColor accepts #RGB or #RRGGBB, with or without '#'.
func parseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	for _, ch := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return drawing.Color{}, fmt.Errorf("invalid color %q", s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

func mustColor(s string) drawing.Color {
	c, err := parseColor(s)
	if err != nil {
		return drawing.ColorBlack
	}
	return c
}
