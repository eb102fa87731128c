package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
	regFieldCount
)

var regLabels = [regFieldCount]string{
	"full name",
	"email",
	"password",
	"confirm",
}

// registerModel is the account creation form.
type registerModel struct {
	inputs [regFieldCount]textinput.Model
	focus  int
	errMsg string
}

// registerSubmitMsg carries the submitted registration to the root model.
type registerSubmitMsg struct {
	displayName string
	email       string
	password    string
	confirm     string
}

// registerErrMsg reports a failed registration.
type registerErrMsg struct {
	err error
}

func newRegisterModel() registerModel {
	var inputs [regFieldCount]textinput.Model
	for i := range regFieldCount {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}

	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regPassword].EchoCharacter = '*'
	inputs[regConfirm].EchoMode = textinput.EchoPassword
	inputs[regConfirm].EchoCharacter = '*'

	inputs[0].Focus()
	return registerModel{inputs: inputs}
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewLogin} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.nextField(), nil
		}
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			return m.prevField(), nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			if m.focus < regConfirm {
				return m.nextField(), nil
			}
			return m.submit()
		}

	case registerErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	msg := registerSubmitMsg{
		displayName: strings.TrimSpace(m.inputs[regName].Value()),
		email:       strings.TrimSpace(m.inputs[regEmail].Value()),
		password:    m.inputs[regPassword].Value(),
		confirm:     m.inputs[regConfirm].Value(),
	}

	// the two password entries must match before registration is attempted
	if msg.password != msg.confirm {
		m.errMsg = "passwords do not match"
		return m, nil
	}
	if msg.displayName == "" || msg.email == "" || msg.password == "" {
		m.errMsg = "all fields are required"
		return m, nil
	}

	return m, func() tea.Msg { return msg }
}

func (m registerModel) nextField() registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % regFieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m registerModel) prevField() registerModel {
	m.inputs[m.focus].Blur()
	m.focus--
	if m.focus < 0 {
		m.focus = regFieldCount - 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m registerModel) View() string {
	s := "\n"

	for i, input := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-10s", regLabels[i]))
		if i == m.focus {
			s += zstyle.Highlight.Render("> ") + label + input.View() + "\n"
		} else {
			s += "  " + label + input.View() + "\n"
		}
	}

	s += "\n"
	if m.errMsg != "" {
		s += "  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n"
	}

	return s
}
