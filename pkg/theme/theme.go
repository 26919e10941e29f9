// Package theme defines the colour palettes used by the weather screen.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a named palette of hex colours.
type Theme struct {
	Name string

	// Base colours
	Background string // screen background
	Foreground string // body text
	Dim        string // placeholders, hints
	Accent     string // buttons, temperature, focused input border

	// Elements
	Title      string // "Weather Day" heading and city name
	ButtonText string // label on accent-coloured buttons
	Surface    string // result card and dialog background
	Border     string // unfocused input and card borders
	Muted      string // condition description

	// Status
	Error   string // inline error text and alert title
	Offline string // "No internet connection" notice

	// Help line
	HelpKey  string
	HelpDesc string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to "default" if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Has reports whether a theme with the given name is registered.
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// Names returns all registered theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme. Empty fields are filled from the
// default theme.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	if base, ok := registry["default"]; ok {
		t = thFillFrom(t, base)
	}
	thRegisterLocked(t)
}

func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	thRegisterLocked(t)
}

func thRegisterLocked(t Theme) {
	registry[strings.ToLower(t.Name)] = t
}

// thFillFrom copies every empty colour of t from base.
func thFillFrom(t, base Theme) Theme {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.Background, base.Background)
	fill(&t.Foreground, base.Foreground)
	fill(&t.Dim, base.Dim)
	fill(&t.Accent, base.Accent)
	fill(&t.Title, base.Title)
	fill(&t.ButtonText, base.ButtonText)
	fill(&t.Surface, base.Surface)
	fill(&t.Border, base.Border)
	fill(&t.Muted, base.Muted)
	fill(&t.Error, base.Error)
	fill(&t.Offline, base.Offline)
	fill(&t.HelpKey, base.HelpKey)
	fill(&t.HelpDesc, base.HelpDesc)
	return t
}
