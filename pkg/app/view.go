package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	appTitle      = "Weather Day"
	submitLabel   = "Get Weather"
	locateLabel   = "Use Current Location"
	offlineNotice = "No internet connection"

	// minWrapWidth is used for wrapping before the first WindowSizeMsg.
	minWrapWidth = 48
)

// View implements tea.Model.
func (m Screen) View() string {
	var out string
	if m.state.Dialog.Open() {
		out = m.viewDialog()
	} else {
		out = m.viewScreen()
	}
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

func (m Screen) viewScreen() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.button(zoneSubmit, submitLabel, false))
	b.WriteString("\n")
	b.WriteString(m.button(zoneLocate, locateLabel, false))

	if !m.state.Connected {
		b.WriteString("\n")
		b.WriteString(m.styles.Offline.Render(offlineNotice))
	}

	switch {
	case m.state.Loading:
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.spinner.View() + " Loading…"))
	case m.state.Locating:
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.spinner.View() + " Locating…"))
	}

	if m.state.Err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(ansi.Wrap(m.state.Err, m.wrapWidth(), " ")))
	}

	if m.state.Result != nil {
		b.WriteString("\n")
		b.WriteString(m.viewCard())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.center(b.String())
}

// viewCard renders the last result. The condition line is omitted when the
// provider sent none.
func (m Screen) viewCard() string {
	res := m.state.Result
	lines := []string{
		m.styles.City.Render(res.LocationName),
		m.styles.Temperature.Render(res.Temperature()),
	}
	if res.HasCondition() {
		lines = append(lines, m.styles.Condition.Render(res.Condition))
	}
	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Screen) viewDialog() string {
	d := m.state.Dialog

	var buttons string
	if d.Kind == DialogPermissionDenied {
		buttons = lipgloss.JoinHorizontal(lipgloss.Top,
			m.button(zoneDialogCancel, "Cancel", m.dialogButton == buttonCancel),
			"  ",
			m.button(zoneDialogOK, "OK", m.dialogButton == buttonOK),
		)
	} else {
		buttons = m.button(zoneDialogOK, "OK", true)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.DialogTitle.Render(d.Title),
		m.styles.DialogBody.Render(ansi.Wrap(d.Message, m.wrapWidth(), " ")),
		buttons,
	)
	box := m.styles.Dialog.Render(body)
	help := m.help.View(m.dkeys)

	return m.center(lipgloss.JoinVertical(lipgloss.Center, box, "", help))
}

// button renders a label as a button, marked as a click zone when mouse
// support is on. In dialogs the unfocused button is dimmed.
func (m Screen) button(id, label string, focused bool) string {
	style := m.styles.Button
	switch {
	case id == zoneDialogOK || id == zoneDialogCancel:
		if focused {
			style = m.styles.ButtonFocus
		} else {
			style = m.styles.ButtonDim
		}
	case m.state.Busy():
		style = m.styles.ButtonDim
	}
	out := style.Render(label)
	if m.zones != nil {
		return m.zones.Mark(id, out)
	}
	return out
}

// wrapWidth is the width error and dialog text wraps at.
func (m Screen) wrapWidth() int {
	if m.width <= 0 {
		return minWrapWidth
	}
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	if w > 72 {
		w = 72
	}
	return w
}

func (m Screen) center(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s,
		lipgloss.WithWhitespaceBackground(m.styles.Background))
}
