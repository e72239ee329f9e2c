package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when the config names no theme or an unknown one.
const DefaultTheme = "dracula"

// ThemeProvider wraps a bubbletint registry holding every built-in tint.
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string
}

// NewThemeProvider selects initialTheme, falling back to DefaultTheme (or the
// first tint) when it is empty or unknown.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	ids := make([]string, 0, len(all))
	for _, t := range all {
		ids = append(ids, t.ID())
		if t.ID() == DefaultTheme {
			fallback = t
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}
	sort.Strings(ids)

	tp := &ThemeProvider{
		registry: tint.NewRegistry(fallback, all...),
		ids:      ids,
	}
	if initialTheme != "" {
		tp.registry.SetTintID(initialTheme)
	}
	return tp
}

// SetTheme switches to the named tint and reports whether it exists.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// NextTheme cycles forward and returns the new tint id.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the current tint id as stored in config.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human name of the current tint.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns all tint ids, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	return append([]string(nil), tp.ids...)
}

// IndexOf returns the position of id in AvailableThemes, or 0.
func (tp *ThemeProvider) IndexOf(id string) int {
	i := sort.SearchStrings(tp.ids, id)
	if i < len(tp.ids) && tp.ids[i] == id {
		return i
	}
	return 0
}

// Registry exposes the registry for direct color access.
func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles builds Styles for the current tint.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
