package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/terminal"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

// errPermissionNotGranted is returned by -here when the location permission
// is not granted. There is no dialog outside the TUI, so no re-request.
var errPermissionNotGranted = errors.New("location permission is not granted (run with -grant-location)")

// resolveHere asks for the location permission once and turns the current
// position into a coordinates query.
func resolveHere(ctx context.Context, perms location.Permissions, locator location.Locator) (weather.Query, error) {
	status, err := perms.Request(ctx)
	if err != nil {
		return weather.Query{}, fmt.Errorf("request location permission: %w", err)
	}
	if status != location.StatusGranted {
		return weather.Query{}, fmt.Errorf("%w: status %s", errPermissionNotGranted, status)
	}
	pos, err := locator.CurrentPosition(ctx)
	if err != nil {
		return weather.Query{}, fmt.Errorf("get current location: %w", err)
	}
	return weather.CoordinatesQuery(pos.Latitude, pos.Longitude), nil
}

// printLookup fetches the weather for q and writes it to w.
func printLookup(ctx context.Context, w io.Writer, provider weather.Provider, q weather.Query) error {
	res, err := provider.Current(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch weather for %q: %w", q.String(), err)
	}
	_, err = io.WriteString(w, formatResult(res, terminal.Width(os.Stdout.Fd())))
	return err
}

// formatResult renders a result as plain lines: location, temperature and,
// when present, the condition.
func formatResult(res weather.Result, width int) string {
	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(bold.Render(ansi.Truncate(res.LocationName, width, "…")))
	b.WriteString("\n")
	b.WriteString(res.Temperature())
	b.WriteString("\n")
	if res.HasCondition() {
		b.WriteString(ansi.Wrap(res.Condition, width, " "))
		b.WriteString("\n")
	}
	return b.String()
}
