package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/network"
	"gitlab.com/tinyland/lab/weatherday/pkg/theme"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

// Zone IDs of clickable elements.
const (
	zoneSubmit       = "submit"
	zoneLocate       = "locate"
	zoneDialogOK     = "dialog-ok"
	zoneDialogCancel = "dialog-cancel"
)

// Dialog button indices.
const (
	buttonOK = iota
	buttonCancel
)

// Deps are the screen's collaborators. All are required.
type Deps struct {
	Weather     weather.Provider
	Network     network.Checker
	Permissions location.Permissions
	Locator     location.Locator
}

// Options tune the screen.
type Options struct {
	// Context bounds every collaborator call. Default: context.Background().
	Context context.Context

	Theme theme.Theme

	// Zones enables mouse clicks on buttons. Nil disables them.
	Zones *zone.Manager

	Logger *slog.Logger
}

// Screen is the weather screen model.
type Screen struct {
	deps   Deps
	ctx    context.Context
	logger *slog.Logger

	state State

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    screenKeys
	dkeys   dialogKeys
	styles  styles
	zones   *zone.Manager

	// cancelFetch cancels the in-flight weather request, if any.
	cancelFetch context.CancelFunc

	// spinning is true while a spinner tick is in flight.
	spinning bool

	dialogButton int
	width        int
	height       int
}

// New returns a screen in its initial state.
func New(deps Deps, opts Options) Screen {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	th := opts.Theme
	if th.Name == "" {
		th = theme.Get("default")
	}
	st := newStyles(th)

	ti := textinput.New()
	ti.Placeholder = "Enter city name"
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = 32
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.Spinner))

	h := help.New()
	h.Styles = st.Help

	return Screen{
		deps:    deps,
		ctx:     ctx,
		logger:  logger.With("component", "screen"),
		state:   NewState(),
		input:   ti,
		spinner: sp,
		help:    h,
		keys:    defaultScreenKeys(),
		dkeys:   defaultDialogKeys(),
		styles:  st,
		zones:   opts.Zones,
	}
}

// State returns the current state snapshot.
func (m Screen) State() State {
	return m.state
}

// Init checks reachability once.
func (m Screen) Init() tea.Cmd {
	return CheckConnectivityCmd(m.ctx, m.deps.Network)
}

// Update implements tea.Model.
func (m Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state.Dialog.Open() {
			return m.handleDialogKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ConnectivityEvent:
		return m.handleConnectivity(msg), nil

	case PermissionEvent:
		return m.handlePermission(msg)

	case PositionEvent:
		return m.handlePosition(msg)

	case WeatherEvent:
		return m.handleWeather(msg), nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Screen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submitCityQuery()
	case key.Matches(msg, m.keys.Locate):
		return m.useCurrentLocation()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithCityInput(m.input.Value())
	return m, cmd
}

func (m Screen) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.dkeys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.dkeys.Switch):
		if m.state.Dialog.Kind == DialogPermissionDenied {
			m.dialogButton = 1 - m.dialogButton
		}
		return m, nil
	case key.Matches(msg, m.dkeys.Cancel):
		return m.pressDialogButton(buttonCancel)
	case key.Matches(msg, m.dkeys.Confirm):
		if msg.String() == "enter" {
			return m.pressDialogButton(m.dialogButton)
		}
		return m.pressDialogButton(buttonOK)
	}
	return m, nil
}

func (m Screen) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.zones == nil || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	// X10 mouse mode reports releases without a button.
	if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
		return m, nil
	}
	if m.state.Dialog.Open() {
		switch {
		case m.zones.Get(zoneDialogOK).InBounds(msg):
			return m.pressDialogButton(buttonOK)
		case m.zones.Get(zoneDialogCancel).InBounds(msg):
			return m.pressDialogButton(buttonCancel)
		}
		return m, nil
	}
	switch {
	case m.zones.Get(zoneSubmit).InBounds(msg):
		return m.submitCityQuery()
	case m.zones.Get(zoneLocate).InBounds(msg):
		return m.useCurrentLocation()
	}
	return m, nil
}

// pressDialogButton resolves the open dialog. Alerts only have OK, so
// every button dismisses them.
func (m Screen) pressDialogButton(button int) (tea.Model, tea.Cmd) {
	kind := m.state.Dialog.Kind
	m.state = m.state.DismissDialog()
	m.dialogButton = buttonOK

	if kind != DialogPermissionDenied || button == buttonCancel {
		return m, nil
	}
	m.state = m.state.BeginLocating()
	cmd := tea.Batch(m.startSpinner(), PermissionCmd(m.ctx, m.deps.Permissions, m.state.LocateSeq, StageRecheck))
	return m, cmd
}

// submitCityQuery fetches weather for the trimmed city input. Blank input
// is ignored.
func (m Screen) submitCityQuery() (tea.Model, tea.Cmd) {
	q, err := weather.CityQuery(m.state.CityInput)
	if err != nil {
		return m, nil
	}
	return m.dispatch(q)
}

// useCurrentLocation starts a new permission flow, superseding any earlier
// flow and the weather request in flight.
func (m Screen) useCurrentLocation() (tea.Model, tea.Cmd) {
	m.cancel()
	m.state = m.state.StartLocating()
	cmd := tea.Batch(m.startSpinner(), PermissionCmd(m.ctx, m.deps.Permissions, m.state.LocateSeq, StageRequest))
	return m, cmd
}

// dispatch starts a weather request for q, cancelling any request still in
// flight.
func (m Screen) dispatch(q weather.Query) (tea.Model, tea.Cmd) {
	m.cancel()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel
	m.state = m.state.Begin()

	m.logger.Debug("dispatching weather request", "seq", m.state.RequestSeq, "kind", q.Kind.String(), "query", q.String())
	cmd := tea.Batch(m.startSpinner(), FetchWeatherCmd(ctx, m.deps.Weather, m.state.RequestSeq, q))
	return m, cmd
}

// startSpinner returns the first tick unless a tick loop is already running.
func (m *Screen) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Screen) cancel() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m Screen) handleConnectivity(ev ConnectivityEvent) Screen {
	if ev.Err != nil {
		m.logger.Warn("error checking network connection", "error", ev.Err)
		return m
	}
	m.state = m.state.WithConnected(ev.Connected)
	return m
}

func (m Screen) handlePermission(ev PermissionEvent) (tea.Model, tea.Cmd) {
	if !m.state.IsCurrentLocate(ev.Seq) {
		m.logger.Debug("discarding stale permission result", "seq", ev.Seq, "current", m.state.LocateSeq, "stage", ev.Stage.String())
		return m, nil
	}
	if ev.Err != nil {
		m.logger.Error("location permission call failed", "stage", ev.Stage.String(), "error", ev.Err)
		m.state = m.state.WithError(permissionErrorPrefix(ev.Stage) + ev.Err.Error())
		return m, nil
	}

	action, msg := nextPermissionStep(ev.Stage, ev.Status)
	m.logger.Debug("location permission", "stage", ev.Stage.String(), "status", ev.Status.String())

	switch action {
	case actionLocate:
		m.state = m.state.BeginLocating()
		return m, ReadPositionCmd(m.ctx, m.deps.Locator, m.state.LocateSeq)
	case actionAskAgain:
		m.state = m.state.EndLocating().ShowDialog(permissionDeniedDialog())
		m.dialogButton = buttonOK
	case actionRetry:
		return m, PermissionCmd(m.ctx, m.deps.Permissions, m.state.LocateSeq, StageRetry)
	case actionFail:
		m.state = m.state.WithError(msg)
	default:
		m.state = m.state.EndLocating()
	}
	return m, nil
}

func (m Screen) handlePosition(ev PositionEvent) (tea.Model, tea.Cmd) {
	if !m.state.IsCurrentLocate(ev.Seq) {
		m.logger.Debug("discarding stale position", "seq", ev.Seq, "current", m.state.LocateSeq)
		return m, nil
	}
	if ev.Err != nil {
		m.logger.Error("error getting current location", "error", ev.Err)
		m.state = m.state.WithError("Error getting current location: " + ev.Err.Error())
		return m, nil
	}
	return m.dispatch(weather.CoordinatesQuery(ev.Position.Latitude, ev.Position.Longitude))
}

func (m Screen) handleWeather(ev WeatherEvent) Screen {
	var applied bool
	if ev.Err != nil {
		msg := "Error fetching weather data: " + ev.Err.Error()
		m.state, applied = m.state.Fail(ev.Seq, msg)
		if applied {
			m.dialogButton = buttonOK
			if !errors.Is(ev.Err, context.Canceled) {
				m.logger.Error("error fetching weather data", "query", ev.Query.String(), "error", ev.Err)
			}
		}
	} else {
		m.state, applied = m.state.Succeed(ev.Seq, ev.Result)
		if applied {
			m.logger.Info("weather updated",
				"location", ev.Result.LocationName,
				"temp_c", ev.Result.TemperatureC,
				"condition", ev.Result.Condition,
			)
		}
	}

	if !applied {
		m.logger.Debug("discarding stale weather response", "seq", ev.Seq, "current", m.state.RequestSeq)
		return m
	}
	m.logger.Debug("weather request settled", "seq", ev.Seq, "phase", m.state.Phase().String())
	m.cancel()
	return m
}
