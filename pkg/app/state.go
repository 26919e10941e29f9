package app

import "gitlab.com/tinyland/lab/weatherday/pkg/weather"

// Phase is the lifecycle position of the most recent query.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// DialogKind selects which modal, if any, blocks the screen.
type DialogKind int

const (
	DialogNone DialogKind = iota
	// DialogAlert shows a fetch error with a single OK button.
	DialogAlert
	// DialogPermissionDenied asks whether to try the permission again,
	// with Cancel and OK buttons.
	DialogPermissionDenied
)

// Dialog is the modal currently shown.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
}

// Open reports whether a modal is shown.
func (d Dialog) Open() bool {
	return d.Kind != DialogNone
}

// State is an immutable snapshot of the screen. Transitions return a new
// State; the screen replaces its snapshot wholesale.
type State struct {
	CityInput string

	// Result is the last successful answer. The pointed-to value is never
	// modified.
	Result *weather.Result

	Loading   bool
	Locating  bool
	Err       string
	Connected bool
	Dialog    Dialog

	// RequestSeq numbers weather requests. Only the answer to the latest
	// request may change the state.
	RequestSeq uint64

	// LocateSeq numbers "use current location" flows. Permission and
	// position answers from an older flow are ignored.
	LocateSeq uint64
}

// NewState returns the state of a freshly opened screen.
func NewState() State {
	return State{Connected: true}
}

// Phase derives the query lifecycle position.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseFailure
	case s.Result != nil:
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// Busy reports whether a spinner should be shown.
func (s State) Busy() bool {
	return s.Loading || s.Locating
}

// WithCityInput records the text field's contents.
func (s State) WithCityInput(v string) State {
	s.CityInput = v
	return s
}

// WithConnected records the reachability flag.
func (s State) WithConnected(connected bool) State {
	s.Connected = connected
	return s
}

// StartLocating begins a new current-location flow. It supersedes both
// any earlier flow and the weather request in flight.
func (s State) StartLocating() State {
	s.LocateSeq++
	s.RequestSeq++
	s.Loading = false
	s.Locating = true
	return s
}

// BeginLocating marks the current flow's permission/position phase as in
// progress.
func (s State) BeginLocating() State {
	s.Locating = true
	return s
}

// IsCurrentLocate reports whether seq belongs to the latest location flow
// and that flow has not been superseded by a weather request.
func (s State) IsCurrentLocate(seq uint64) bool {
	return seq == s.LocateSeq && s.Locating
}

// EndLocating clears the permission/position phase.
func (s State) EndLocating() State {
	s.Locating = false
	return s
}

// Begin starts a new weather request and returns the state holding its
// sequence number.
func (s State) Begin() State {
	s.RequestSeq++
	s.LocateSeq++
	s.Loading = true
	s.Locating = false
	s.Err = ""
	return s
}

// Succeed applies a result for request seq. It returns false, leaving the
// state unchanged, when seq is not the latest request.
func (s State) Succeed(seq uint64, res weather.Result) (State, bool) {
	if seq != s.RequestSeq {
		return s, false
	}
	s.Result = &res
	s.Err = ""
	s.Loading = false
	return s, true
}

// Fail applies a failure for request seq: msg becomes the inline error and
// an alert dialog. It returns false, leaving the state unchanged, when seq
// is not the latest request.
func (s State) Fail(seq uint64, msg string) (State, bool) {
	if seq != s.RequestSeq {
		return s, false
	}
	s.Err = msg
	s.Loading = false
	s.Dialog = Dialog{Kind: DialogAlert, Title: "Error", Message: msg}
	return s, true
}

// WithError sets an inline error without a dialog and ends locating.
func (s State) WithError(msg string) State {
	s.Err = msg
	s.Locating = false
	return s
}

// ShowDialog opens d.
func (s State) ShowDialog(d Dialog) State {
	s.Dialog = d
	return s
}

// DismissDialog closes the current dialog.
func (s State) DismissDialog() State {
	s.Dialog = Dialog{}
	return s
}
