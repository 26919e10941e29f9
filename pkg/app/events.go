// Package app implements the weather screen as a Bubbletea model. It owns
// the screen state, drives the reachability checker, the location
// permission and position APIs and the weather provider, and renders the
// loading, error and result states.
//
// All state changes happen inside Update, which Bubbletea runs on a single
// goroutine. Collaborator calls run inside commands and report back through
// the event types below.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

// ConnectivityEvent carries the result of the startup reachability check.
type ConnectivityEvent struct {
	Connected bool
	Err       error
}

// PermissionStage identifies which step of the permission flow produced a
// PermissionEvent.
type PermissionStage int

const (
	// StageRequest is the first request after the user asked for
	// current-location weather.
	StageRequest PermissionStage = iota
	// StageRecheck is the check-only call after the user confirmed the
	// denied dialog.
	StageRecheck
	// StageRetry is the single extra request after a recheck still found
	// the permission denied.
	StageRetry
)

func (s PermissionStage) String() string {
	switch s {
	case StageRequest:
		return "request"
	case StageRecheck:
		return "recheck"
	case StageRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// PermissionEvent carries the outcome of a permission check or request
// made by the location flow numbered Seq.
type PermissionEvent struct {
	Seq    uint64
	Stage  PermissionStage
	Status location.Status
	Err    error
}

// PositionEvent carries the device position read after a grant in the
// location flow numbered Seq.
type PositionEvent struct {
	Seq      uint64
	Position location.Coordinates
	Err      error
}

// WeatherEvent carries the provider's answer for the request numbered Seq.
type WeatherEvent struct {
	Seq       uint64
	Query     weather.Query
	Result    weather.Result
	Err       error
	Timestamp time.Time
}
