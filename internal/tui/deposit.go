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

// depositSources are the funding options offered on the deposit form.
var depositSources = []string{
	"Bank transfer",
	"Debit card",
	"Cash",
	"Other",
}

// depositModel is the deposit form.
type depositModel struct {
	amount textinput.Model
	source int
	done   bool
	flash  string
	errMsg string
}

// depositSubmitMsg carries a deposit request to the root model.
type depositSubmitMsg struct {
	amount float64
	source string
}

// depositErrMsg reports a rejected deposit.
type depositErrMsg struct {
	err error
}

// depositDoneMsg reports a completed deposit and the new balance.
type depositDoneMsg struct {
	amount  float64
	balance money.Amount
}

func newDepositModel() depositModel {
	ti := textinput.New()
	ti.Placeholder = "5000"
	ti.CharLimit = 32
	ti.Width = 20
	ti.Prompt = ""
	ti.Focus()
	return depositModel{amount: ti}
}

func (m depositModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m depositModel) Update(msg tea.Msg) (depositModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.done {
			// any key returns to history early
			return m, func() tea.Msg { return navigateMsg{view: viewHistory} }
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.String() == " " {
			m.source = (m.source + 1) % len(depositSources)
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.submit()
		}

		if msg.Type == tea.KeyRunes {
			m.errMsg = ""
		}

	case depositErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil

	case depositDoneMsg:
		m.done = true
		m.flash = fmt.Sprintf("deposited %s · new balance %s",
			money.FormatFloat(msg.amount), msg.balance.Format())
		return m, showResultFor(2 * time.Second)
	}

	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m depositModel) submit() (depositModel, tea.Cmd) {
	raw := strings.TrimSpace(m.amount.Value())

	// malformed input becomes NaN so the ledger is the one place that
	// decides what counts as a valid amount
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		amount = math.NaN()
	}

	source := depositSources[m.source]
	return m, func() tea.Msg {
		return depositSubmitMsg{amount: amount, source: source}
	}
}

func (m depositModel) View() string {
	if m.done {
		return "\n  " + zstyle.StatusOK.Render(m.flash) + "\n\n  " +
			zstyle.MutedText.Render("any key to continue") + "\n"
	}

	s := "\n"
	s += zstyle.Highlight.Render("> ") + zstyle.MutedText.Render(fmt.Sprintf("%-10s", "amount")) +
		m.amount.View() + "\n"
	s += "    " + zstyle.MutedText.Render(fmt.Sprintf("%-10s", "source")) +
		depositSources[m.source] + " " + zstyle.MutedText.Render("(space to cycle)") + "\n"

	s += "\n"
	if m.errMsg != "" {
		s += "  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n"
	}

	return s
}

// showResultFor navigates to the history view after d.
func showResultFor(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navigateMsg{view: viewHistory}
	})
}
