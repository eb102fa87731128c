package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zwallet/internal/ledger"
	"github.com/zarlcorp/zwallet/internal/money"
)

// historyModel renders the transaction list, newest first.
type historyModel struct {
	txs []ledger.Transaction
}

func newHistoryModel(txs []ledger.Transaction) historyModel {
	return historyModel{txs: txs}
}

func (m historyModel) Init() tea.Cmd {
	return nil
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc || key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	if len(m.txs) == 0 {
		return "\n  " + zstyle.MutedText.Render("no transactions yet") + "\n"
	}

	s := "\n"
	for _, tx := range m.txs {
		s += fmt.Sprintf("  %s  %s  %12s  %s\n",
			zstyle.MutedText.Render(tx.Date),
			renderKind(tx.Kind),
			money.FormatFloat(tx.Amount),
			tx.Detail)
	}
	return s
}

func renderKind(k ledger.Kind) string {
	label := fmt.Sprintf("%-8s", k)
	switch k {
	case ledger.KindDeposit:
		return zstyle.StatusOK.Render(label)
	case ledger.KindTransfer:
		return zstyle.Highlight.Render(label)
	}
	return zstyle.MutedText.Render(label)
}
