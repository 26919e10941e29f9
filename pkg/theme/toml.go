package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Base    thTOMLBase    `toml:"base"`
	Element thTOMLElement `toml:"element"`
	Status  thTOMLStatus  `toml:"status"`
	Help    thTOMLHelp    `toml:"help"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLElement struct {
	Title      string `toml:"title"`
	ButtonText string `toml:"button_text"`
	Surface    string `toml:"surface"`
	Border     string `toml:"border"`
	Muted      string `toml:"muted"`
}

type thTOMLStatus struct {
	Error   string `toml:"error"`
	Offline string `toml:"offline"`
}

type thTOMLHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition. Colours that are left out
// are empty; Register fills them from the default theme.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Title:      tt.Element.Title,
		ButtonText: tt.Element.ButtonText,
		Surface:    tt.Element.Surface,
		Border:     tt.Element.Border,
		Muted:      tt.Element.Muted,

		Error:   tt.Status.Error,
		Offline: tt.Status.Offline,

		HelpKey:  tt.Help.Key,
		HelpDesc: tt.Help.Desc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads a TOML theme from path and registers it. It returns the
// registered theme with empty colours filled in.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return Get(t.Name), nil
}

// thValidateTheme checks that the theme has a name and that every colour
// that is set is a #RRGGBB hex string.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: name is required")
	}
	colors := map[string]string{
		"base.background":     t.Background,
		"base.foreground":     t.Foreground,
		"base.dim":            t.Dim,
		"base.accent":         t.Accent,
		"element.title":       t.Title,
		"element.button_text": t.ButtonText,
		"element.surface":     t.Surface,
		"element.border":      t.Border,
		"element.muted":       t.Muted,
		"status.error":        t.Error,
		"status.offline":      t.Offline,
		"help.key":            t.HelpKey,
		"help.desc":           t.HelpDesc,
	}
	for field, c := range colors {
		if c != "" && !thHexColorRegex.MatchString(c) {
			return fmt.Errorf("theme: %s: invalid hex color %q", field, c)
		}
	}
	return nil
}
