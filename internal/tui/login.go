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
	loginEmail = iota
	loginPassword
	loginFieldCount
)

var loginLabels = [loginFieldCount]string{
	"email",
	"password",
}

// loginModel is the sign-in form.
type loginModel struct {
	inputs [loginFieldCount]textinput.Model
	focus  int
	errMsg string
}

// loginSubmitMsg carries submitted credentials to the root model.
type loginSubmitMsg struct {
	email    string
	password string
}

// loginErrMsg reports a failed sign-in.
type loginErrMsg struct {
	err error
}

func newLoginModel() loginModel {
	var inputs [loginFieldCount]textinput.Model
	for i := range loginFieldCount {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}

	inputs[loginEmail].Placeholder = "demo@zwallet.cl"
	inputs[loginPassword].EchoMode = textinput.EchoPassword
	inputs[loginPassword].EchoCharacter = '*'

	inputs[0].Focus()
	return loginModel{inputs: inputs}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.String() == "ctrl+r" {
			return m, func() tea.Msg { return navigateMsg{view: viewRegister} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.nextField(), nil
		}
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			return m.prevField(), nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			if m.focus < loginPassword {
				return m.nextField(), nil
			}
			return m.submit()
		}

	case loginErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil
	}

	// typing clears a stale error
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[loginEmail].Value())
	password := m.inputs[loginPassword].Value()

	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	return m, func() tea.Msg {
		return loginSubmitMsg{email: email, password: password}
	}
}

func (m loginModel) nextField() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % loginFieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) prevField() loginModel {
	m.inputs[m.focus].Blur()
	m.focus--
	if m.focus < 0 {
		m.focus = loginFieldCount - 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) View() string {
	s := "\n"

	for i, input := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-10s", loginLabels[i]))
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
		s += "  " + zstyle.MutedText.Render("demo account: demo@zwallet.cl / 1234") + "\n"
	}

	return s
}
