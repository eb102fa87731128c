package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/zwallet/internal/ledger"
	"github.com/zarlcorp/zwallet/internal/money"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func tabKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

func typeWord(m loginModel, word string) loginModel {
	for _, r := range word {
		m, _ = m.Update(keyMsg(r))
	}
	return m
}

// login view tests

func TestLoginViewShowsFields(t *testing.T) {
	m := newLoginModel()
	view := m.View()

	if !strings.Contains(view, "email") {
		t.Error("view should show email field")
	}
	if !strings.Contains(view, "password") {
		t.Error("view should show password field")
	}
	if !strings.Contains(view, "demo@zwallet.cl") {
		t.Error("view should show the demo account hint")
	}
}

func TestLoginSubmitEmptyShowsError(t *testing.T) {
	m := newLoginModel()
	m, _ = m.Update(tabKey())
	m, cmd := m.Update(enterKey())

	if cmd != nil {
		t.Error("empty submit should not emit a command")
	}
	if m.errMsg == "" {
		t.Error("empty submit should set an inline error")
	}
}

func TestLoginSubmitEmitsCredentials(t *testing.T) {
	m := newLoginModel()
	m = typeWord(m, "demo@zwallet.cl")
	m, _ = m.Update(tabKey())
	for _, r := range "1234" {
		m, _ = m.Update(keyMsg(r))
	}

	m, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("submit should emit a command")
	}

	msg, ok := cmd().(loginSubmitMsg)
	if !ok {
		t.Fatalf("cmd should produce loginSubmitMsg, got %T", cmd())
	}
	if msg.email != "demo@zwallet.cl" || msg.password != "1234" {
		t.Errorf("submitted %q/%q", msg.email, msg.password)
	}
}

func TestLoginTypingClearsError(t *testing.T) {
	m := newLoginModel()
	m.errMsg = "stale"
	m, _ = m.Update(keyMsg('a'))

	if m.errMsg != "" {
		t.Error("typing should clear the inline error")
	}
}

// register view tests

func TestRegisterPasswordMismatchStaysLocal(t *testing.T) {
	m := newRegisterModel()
	m.inputs[regName].SetValue("Test User")
	m.inputs[regEmail].SetValue("test@zwallet.cl")
	m.inputs[regPassword].SetValue("one")
	m.inputs[regConfirm].SetValue("two")
	m.focus = regConfirm

	m, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("mismatched passwords should not emit a command")
	}
	if !strings.Contains(m.errMsg, "match") {
		t.Errorf("errMsg = %q, want mention of mismatch", m.errMsg)
	}
}

func TestRegisterSubmitTrimsFields(t *testing.T) {
	m := newRegisterModel()
	m.inputs[regName].SetValue("  Test User ")
	m.inputs[regEmail].SetValue(" test@zwallet.cl ")
	m.inputs[regPassword].SetValue("pw")
	m.inputs[regConfirm].SetValue("pw")
	m.focus = regConfirm

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("valid submit should emit a command")
	}
	msg := cmd().(registerSubmitMsg)
	if msg.displayName != "Test User" || msg.email != "test@zwallet.cl" {
		t.Errorf("submitted %q/%q, want trimmed values", msg.displayName, msg.email)
	}
}

func TestRegisterEscReturnsToLogin(t *testing.T) {
	m := newRegisterModel()
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should emit a command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.view != viewLogin {
		t.Errorf("esc should navigate to login, got %v", cmd())
	}
}

// menu view tests

func TestMenuViewShowsNameAndBalance(t *testing.T) {
	bal, _ := money.FromFloat(100000)
	m := newMenuModel("1.0", "Demo User", bal)
	view := m.View()

	if !strings.Contains(view, "Demo User") {
		t.Error("view should greet the user by name")
	}
	if !strings.Contains(view, "$100.000") {
		t.Errorf("view should show the formatted balance, got %q", view)
	}
}

func TestMenuSelectionNavigates(t *testing.T) {
	m := newMenuModel("1.0", "Demo User", money.Amount{})

	tests := []struct {
		downs int
		want  viewID
	}{
		{0, viewDeposit},
		{1, viewSend},
		{2, viewHistory},
	}
	for _, tc := range tests {
		sel := m
		for range tc.downs {
			sel, _ = sel.Update(keyMsg('j'))
		}
		_, cmd := sel.Update(enterKey())
		if cmd == nil {
			t.Fatalf("downs=%d: no command", tc.downs)
		}
		nav, ok := cmd().(navigateMsg)
		if !ok || nav.view != tc.want {
			t.Errorf("downs=%d: got %v, want view %d", tc.downs, cmd(), tc.want)
		}
	}
}

func TestMenuLogoutEmitsLogout(t *testing.T) {
	m := newMenuModel("1.0", "Demo User", money.Amount{})
	for range 3 {
		m, _ = m.Update(keyMsg('j'))
	}
	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(logoutMsg); !ok {
		t.Errorf("got %T, want logoutMsg", cmd())
	}
}

// deposit view tests

func TestDepositMalformedAmountBecomesNaN(t *testing.T) {
	m := newDepositModel()
	m.amount.SetValue("abc")

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("submit should emit a command")
	}
	msg := cmd().(depositSubmitMsg)
	if !math.IsNaN(msg.amount) {
		t.Errorf("amount = %v, want NaN", msg.amount)
	}
}

func TestDepositErrShowsInline(t *testing.T) {
	m := newDepositModel()
	m, _ = m.Update(depositErrMsg{err: ledger.ErrInvalidAmount})

	if !strings.Contains(m.View(), ledger.ErrInvalidAmount.Error()) {
		t.Error("view should show the rejection inline")
	}
}

func TestDepositDoneShowsFlash(t *testing.T) {
	m := newDepositModel()
	bal, _ := money.FromFloat(105000)
	m, cmd := m.Update(depositDoneMsg{amount: 5000, balance: bal})

	if !m.done {
		t.Error("model should be in done state")
	}
	if cmd == nil {
		t.Error("done should schedule the return to history")
	}
	if !strings.Contains(m.View(), "$105.000") {
		t.Errorf("flash should show the new balance, got %q", m.View())
	}
}

func TestDepositSourceCycles(t *testing.T) {
	m := newDepositModel()
	first := depositSources[m.source]
	m, _ = m.Update(keyMsg(' '))
	if depositSources[m.source] == first {
		t.Error("space should cycle the funding source")
	}
}

// send view tests

func TestSendPickerFillsRecipient(t *testing.T) {
	m := newSendModel([]string{"María Pérez", "Juan Soto"})

	// tab past the four text fields onto the picker
	for range sendFieldCount {
		m, _ = m.Update(tabKey())
	}
	if m.focus != sendPicker {
		t.Fatalf("focus = %d, want picker", m.focus)
	}

	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(enterKey())

	if got := m.inputs[sendRecipient].Value(); got != "Juan Soto" {
		t.Errorf("recipient = %q, want picked contact", got)
	}
	if m.focus != sendAmount {
		t.Error("picking should move focus to the amount field")
	}
}

func TestSendSaveContactEmitsName(t *testing.T) {
	m := newSendModel(nil)
	m.inputs[sendNewContact].SetValue(" Pedro Paz ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if cmd == nil {
		t.Fatal("ctrl+a should emit a command")
	}
	msg := cmd().(saveContactMsg)
	if msg.name != "Pedro Paz" {
		t.Errorf("name = %q, want trimmed", msg.name)
	}
}

func TestSendContactSavedRefreshesPicker(t *testing.T) {
	m := newSendModel(nil)
	m.inputs[sendNewContact].SetValue("Pedro Paz")

	m, _ = m.Update(contactSavedMsg{added: true, contacts: []string{"Pedro Paz"}})
	if len(m.contacts) != 1 {
		t.Fatalf("contacts = %v", m.contacts)
	}
	if m.inputs[sendNewContact].Value() != "" {
		t.Error("save-as field should clear after a successful save")
	}

	m, _ = m.Update(contactSavedMsg{added: false, contacts: []string{"Pedro Paz"}})
	if m.errMsg == "" {
		t.Error("duplicate save should set an inline error")
	}
}

func TestSendSubmitFromNote(t *testing.T) {
	m := newSendModel(nil)
	m.inputs[sendRecipient].SetValue("Juan Soto")
	m.inputs[sendAmount].SetValue("2500")
	m.inputs[sendNote].SetValue("lunch")
	m = m.focusField(sendNote)

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("submit should emit a command")
	}
	msg := cmd().(sendSubmitMsg)
	if msg.amount != 2500 || msg.recipient != "Juan Soto" || msg.note != "lunch" {
		t.Errorf("submitted %+v", msg)
	}
}

// history view tests

func TestHistoryEmptyState(t *testing.T) {
	m := newHistoryModel(nil)
	if !strings.Contains(m.View(), "no transactions yet") {
		t.Error("empty history should say so")
	}
}

func TestHistoryRendersRows(t *testing.T) {
	m := newHistoryModel([]ledger.Transaction{
		{Date: "2026-08-30", Kind: ledger.KindDeposit, Amount: 5000, Detail: "Deposit received · Source: Cash"},
		{Date: "2026-08-29", Kind: ledger.KindTransfer, Amount: 2500, Detail: "Transfer to Juan Soto"},
	})
	view := m.View()

	for _, want := range []string{"2026-08-30", "deposit", "$5.000", "2026-08-29", "transfer", "$2.500", "Juan Soto"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryEscReturnsToMenu(t *testing.T) {
	m := newHistoryModel(nil)
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should emit a command")
	}
	nav := cmd().(navigateMsg)
	if nav.view != viewMenu {
		t.Errorf("esc should return to menu, got %d", nav.view)
	}
}
