// Package terminal answers the few questions weatherday asks about the
// terminal it runs in: is it interactive, how wide is it, and should
// output be coloured.
package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when neither the terminal nor COLUMNS report a width.
const DefaultWidth = 80

// Interactive reports whether fd is a terminal the TUI can take over.
func Interactive(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width returns the column count of the terminal on fd. It tries:
//  1. the terminal size of fd
//  2. the COLUMNS environment variable
//  3. DefaultWidth
func Width(fd uintptr) int {
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return envInt("COLUMNS", DefaultWidth)
}

// ColorProfile returns the profile output on fd should use. NO_COLOR and
// non-terminal output get plain ASCII; otherwise the profile is detected
// from the environment.
func ColorProfile(fd uintptr) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || !Interactive(fd) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// envInt reads a positive integer from the named environment variable.
// Returns fallback if the variable is unset, empty, or not a valid
// positive integer.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
