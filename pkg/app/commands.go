package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/network"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

// CheckConnectivityCmd queries checker once and delivers a
// ConnectivityEvent.
func CheckConnectivityCmd(ctx context.Context, checker network.Checker) tea.Cmd {
	return func() tea.Msg {
		ok, err := checker.Connected(ctx)
		return ConnectivityEvent{Connected: ok, Err: err}
	}
}

// PermissionCmd runs the permission call for stage of the location flow
// seq: a check-only call for StageRecheck, a request otherwise.
func PermissionCmd(ctx context.Context, perms location.Permissions, seq uint64, stage PermissionStage) tea.Cmd {
	return func() tea.Msg {
		var (
			st  location.Status
			err error
		)
		if stage == StageRecheck {
			st, err = perms.Check(ctx)
		} else {
			st, err = perms.Request(ctx)
		}
		return PermissionEvent{Seq: seq, Stage: stage, Status: st, Err: err}
	}
}

// ReadPositionCmd reads the current position and delivers a PositionEvent
// tagged with seq.
func ReadPositionCmd(ctx context.Context, locator location.Locator, seq uint64) tea.Cmd {
	return func() tea.Msg {
		pos, err := locator.CurrentPosition(ctx)
		return PositionEvent{Seq: seq, Position: pos, Err: err}
	}
}

// FetchWeatherCmd asks provider for q and delivers a WeatherEvent tagged
// with seq so the screen can drop answers to superseded requests.
func FetchWeatherCmd(ctx context.Context, provider weather.Provider, seq uint64, q weather.Query) tea.Cmd {
	return func() tea.Msg {
		res, err := provider.Current(ctx, q)
		return WeatherEvent{
			Seq:       seq,
			Query:     q,
			Result:    res,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}
