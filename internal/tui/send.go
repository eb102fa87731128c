package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zwallet/internal/money"
)

const (
	sendRecipient = iota
	sendAmount
	sendNote
	sendNewContact
	sendFieldCount

	// the contact picker sits after the text fields in the focus cycle
	sendPicker = sendFieldCount
)

var sendLabels = [sendFieldCount]string{
	"to",
	"amount",
	"note",
	"save as",
}

// sendModel is the transfer form with a saved-contact picker.
type sendModel struct {
	inputs   [sendFieldCount]textinput.Model
	contacts []string
	focus    int
	cursor   int
	done     bool
	flash    string
	errMsg   string
}

// sendSubmitMsg carries a transfer request to the root model.
type sendSubmitMsg struct {
	amount    float64
	recipient string
	note      string
}

// sendErrMsg reports a rejected transfer.
type sendErrMsg struct {
	err error
}

// sendDoneMsg reports a completed transfer and the new balance.
type sendDoneMsg struct {
	amount    float64
	recipient string
	balance   money.Amount
}

// saveContactMsg asks the root model to add a contact.
type saveContactMsg struct {
	name string
}

// contactSavedMsg refreshes the picker after a save attempt.
type contactSavedMsg struct {
	added    bool
	contacts []string
}

func newSendModel(contacts []string) sendModel {
	var inputs [sendFieldCount]textinput.Model
	for i := range sendFieldCount {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}

	inputs[sendAmount].Placeholder = "5000"
	inputs[sendAmount].CharLimit = 32
	inputs[sendAmount].Width = 20
	inputs[sendNewContact].Placeholder = "new contact name"

	inputs[0].Focus()
	return sendModel{inputs: inputs, contacts: contacts}
}

func (m sendModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m sendModel) Update(msg tea.Msg) (sendModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.done {
			return m, func() tea.Msg { return navigateMsg{view: viewHistory} }
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if msg.String() == "ctrl+a" {
			name := strings.TrimSpace(m.inputs[sendNewContact].Value())
			return m, func() tea.Msg { return saveContactMsg{name: name} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyShiftTab {
			if msg.Type == tea.KeyShiftTab {
				return m.prevFocus(), nil
			}
			return m.nextFocus(), nil
		}

		if m.focus == sendPicker {
			return m.updatePicker(msg)
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			if m.focus == sendNote {
				return m.submit()
			}
			return m.nextFocus(), nil
		}

		if msg.Type == tea.KeyRunes {
			m.errMsg = ""
		}

	case sendErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil

	case sendDoneMsg:
		m.done = true
		m.flash = fmt.Sprintf("sent %s to %s · new balance %s",
			money.FormatFloat(msg.amount), msg.recipient, msg.balance.Format())
		return m, showResultFor(2 * time.Second)

	case contactSavedMsg:
		m.contacts = msg.contacts
		if msg.added {
			m.inputs[sendNewContact].SetValue("")
			m.errMsg = ""
		} else {
			m.errMsg = "contact already saved"
		}
		return m, nil
	}

	if m.focus >= sendFieldCount {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// updatePicker handles keys while the contact list has focus.
func (m sendModel) updatePicker(msg tea.KeyMsg) (sendModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}
	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
		return m, nil
	}
	if key.Matches(msg, zstyle.KeyEnter) && len(m.contacts) > 0 {
		m.inputs[sendRecipient].SetValue(m.contacts[m.cursor])
		return m.focusField(sendAmount), nil
	}
	return m, nil
}

func (m sendModel) submit() (sendModel, tea.Cmd) {
	raw := strings.TrimSpace(m.inputs[sendAmount].Value())
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		amount = math.NaN()
	}

	msg := sendSubmitMsg{
		amount:    amount,
		recipient: strings.TrimSpace(m.inputs[sendRecipient].Value()),
		note:      strings.TrimSpace(m.inputs[sendNote].Value()),
	}
	return m, func() tea.Msg { return msg }
}

func (m sendModel) nextFocus() sendModel {
	next := m.focus + 1
	if next > sendPicker || (next == sendPicker && len(m.contacts) == 0) {
		next = 0
	}
	return m.focusField(next)
}

func (m sendModel) prevFocus() sendModel {
	prev := m.focus - 1
	if prev < 0 {
		prev = sendPicker
		if len(m.contacts) == 0 {
			prev = sendFieldCount - 1
		}
	}
	return m.focusField(prev)
}

func (m sendModel) focusField(target int) sendModel {
	if m.focus < sendFieldCount {
		m.inputs[m.focus].Blur()
	}
	m.focus = target
	if m.focus < sendFieldCount {
		m.inputs[m.focus].Focus()
	}
	return m
}

func (m sendModel) View() string {
	if m.done {
		return "\n  " + zstyle.StatusOK.Render(m.flash) + "\n\n  " +
			zstyle.MutedText.Render("any key to continue") + "\n"
	}

	s := "\n"
	for i, input := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-10s", sendLabels[i]))
		if i == m.focus {
			s += zstyle.Highlight.Render("> ") + label + input.View() + "\n"
		} else {
			s += "  " + label + input.View() + "\n"
		}
	}

	s += "\n  " + zstyle.Subtitle.Render("saved contacts") + "\n"
	if len(m.contacts) == 0 {
		s += "  " + zstyle.MutedText.Render("none yet") + "\n"
	}
	for i, c := range m.contacts {
		if m.focus == sendPicker && m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", c)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", c)
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
