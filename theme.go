package tgmd

import (
	"sort"
	"strings"
)

// Glyphs defines the decorative characters a theme contributes to the output
// dialect: heading decorations, list bullets, rules and task markers. All
// glyphs must be safe to emit unescaped in MarkdownV2.
type Glyphs struct {
	Heading    [6]string // appended after the heading marker, one per level
	Bullet     string    // unordered list item marker
	Rule       string    // thematic break
	Checked    string    // checked task list marker
	Unchecked  string    // unchecked task list marker
	ImageLabel string    // link title used when an image has no alt text
}

// Theme provides a named glyph set for rendering.
type Theme interface {
	Name() string
	Glyphs() Glyphs
}

type theme struct {
	name   string
	glyphs Glyphs
}

func (t theme) Name() string   { return t.name }
func (t theme) Glyphs() Glyphs { return t.glyphs }

// NewTheme returns a Theme from a Glyphs definition.
func NewTheme(name string, glyphs Glyphs) Theme {
	return theme{name: name, glyphs: glyphs}
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", glyphs: Glyphs{
		Heading:    [6]string{"🌟", "⭐", "✨", "🔸", "🔹", "✴️"},
		Bullet:     "⦁",
		Rule:       "———",
		Checked:    "☑️",
		Unchecked:  "☐",
		ImageLabel: "Image",
	}},
	"plain": theme{name: "plain", glyphs: Glyphs{
		Bullet:     "•",
		Rule:       "———",
		Checked:    "☑",
		Unchecked:  "☐",
		ImageLabel: "Image",
	}},
	"minimal": theme{name: "minimal", glyphs: Glyphs{
		Bullet:     "·",
		Rule:       "···",
		Checked:    "✓",
		Unchecked:  "·",
		ImageLabel: "Image",
	}},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	t, ok := builtinThemes[normalized]
	return t, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
