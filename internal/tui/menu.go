package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zwallet/internal/money"
)

type menuChoice int

const (
	menuDeposit menuChoice = iota
	menuSend
	menuHistory
	menuLogout
	menuQuit
)

var menuItems = []string{
	"Deposit funds",
	"Send money",
	"Transactions",
	"Log out",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor      int
	version     string
	displayName string
	balance     money.Amount
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// logoutMsg tells the root model to end the session.
type logoutMsg struct{}

func newMenuModel(version, displayName string, balance money.Amount) menuModel {
	return menuModel{
		version:     version,
		displayName: displayName,
		balance:     balance,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuDeposit:
		return func() tea.Msg { return navigateMsg{view: viewDeposit} }
	case menuSend:
		return func() tea.Msg { return navigateMsg{view: viewSend} }
	case menuHistory:
		return func() tea.Msg { return navigateMsg{view: viewHistory} }
	case menuLogout:
		return func() tea.Msg { return logoutMsg{} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	welcome := zstyle.Subtitle.Render(fmt.Sprintf("Welcome, %s", m.displayName))
	balance := zstyle.Title.Render(m.balance.Format())

	s := fmt.Sprintf("\n  %s\n  %s %s\n\n", welcome,
		zstyle.MutedText.Render("balance"), balance)

	for i, item := range menuItems {
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	return s
}
