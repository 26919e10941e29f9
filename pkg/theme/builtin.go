package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thMidnightTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme is the light palette: grey screen, white card, blue
// buttons and red errors.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#e0e0e0",
		Foreground: "#333333",
		Dim:        "#888888",
		Accent:     "#007bff",

		Title:      "#333333",
		ButtonText: "#ffffff",
		Surface:    "#ffffff",
		Border:     "#cccccc",
		Muted:      "#555555",

		Error:   "#ff0000",
		Offline: "#ff0000",

		HelpKey:  "#007bff",
		HelpDesc: "#888888",
	}
}

// thMidnightTheme is a dark palette for dark terminals.
func thMidnightTheme() Theme {
	return Theme{
		Name:       "midnight",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		Title:      "#c0caf5",
		ButtonText: "#1a1b26",
		Surface:    "#24283b",
		Border:     "#414868",
		Muted:      "#a9b1d6",

		Error:   "#f7768e",
		Offline: "#e0af68",

		HelpKey:  "#7aa2f7",
		HelpDesc: "#565f89",
	}
}
