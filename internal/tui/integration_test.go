package tui

import (
	"testing"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zwallet/internal/kvstore"
	"github.com/zarlcorp/zwallet/internal/wallet"
)

// setupModel creates a root Model with a seeded wallet on an in-memory
// store, bypassing the unlock flow.
func setupModel(t *testing.T) Model {
	t.Helper()

	s, err := kvstore.Open(zfilesystem.NewMemFS(), "testpass")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	w, err := wallet.Open(s)
	if err != nil {
		t.Fatal(err)
	}

	m := New("1.0", t.TempDir(), false)
	m.store = s
	m.wallet = w
	m.active = viewLogin
	m.login = newLoginModel()
	return m
}

// processMsg sends a message through the root model and returns the updated model.
func processMsg(t *testing.T, m Model, msg interface{}) Model {
	t.Helper()
	result, _ := m.Update(msg)
	return result.(Model)
}

func TestIntegrationLoginRoutesToMenu(t *testing.T) {
	m := setupModel(t)

	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	if m.active != viewMenu {
		t.Fatalf("active = %d, want viewMenu", m.active)
	}
	if m.menu.displayName != "Demo User" {
		t.Errorf("displayName = %q", m.menu.displayName)
	}
}

func TestIntegrationBadLoginStaysOnLogin(t *testing.T) {
	m := setupModel(t)

	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "wrong"})
	if m.active != viewLogin {
		t.Fatalf("active = %d, want viewLogin", m.active)
	}
	if m.login.errMsg == "" {
		t.Error("failed login should set an inline error")
	}
}

func TestIntegrationPrivateViewsBounceToLogin(t *testing.T) {
	m := setupModel(t)

	m = processMsg(t, m, navigateMsg{view: viewHistory})
	if m.active != viewLogin {
		t.Fatalf("active = %d, want viewLogin without a session", m.active)
	}
}

func TestIntegrationLoginBouncesToMenuWithSession(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})

	m = processMsg(t, m, navigateMsg{view: viewLogin})
	if m.active != viewMenu {
		t.Fatalf("active = %d, want viewMenu with a session", m.active)
	}
}

func TestIntegrationRegisterLogsIn(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, navigateMsg{view: viewRegister})
	if m.active != viewRegister {
		t.Fatalf("active = %d, want viewRegister", m.active)
	}

	m = processMsg(t, m, registerSubmitMsg{
		displayName: "New User",
		email:       "new@zwallet.cl",
		password:    "pw",
		confirm:     "pw",
	})
	if m.active != viewMenu {
		t.Fatalf("active = %d, want viewMenu after registration", m.active)
	}
	if m.menu.displayName != "New User" {
		t.Errorf("displayName = %q", m.menu.displayName)
	}
}

func TestIntegrationDuplicateRegisterShowsError(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, navigateMsg{view: viewRegister})

	m = processMsg(t, m, registerSubmitMsg{
		displayName: "Demo Again",
		email:       "demo@zwallet.cl",
		password:    "pw",
		confirm:     "pw",
	})
	if m.active != viewRegister {
		t.Fatalf("active = %d, want viewRegister on duplicate email", m.active)
	}
	if m.register.errMsg == "" {
		t.Error("duplicate registration should set an inline error")
	}
}

func TestIntegrationDepositUpdatesBalance(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	m = processMsg(t, m, navigateMsg{view: viewDeposit})

	m = processMsg(t, m, depositSubmitMsg{amount: 5000, source: "Cash"})
	if !m.deposit.done {
		t.Fatal("deposit should reach the done state")
	}

	bal := m.wallet.Balance()
	if bal.Format() != "$105.000" {
		t.Errorf("balance = %s", bal.Format())
	}
}

func TestIntegrationDepositRejectionStaysOnForm(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	m = processMsg(t, m, navigateMsg{view: viewDeposit})

	m = processMsg(t, m, depositSubmitMsg{amount: -5, source: "Cash"})
	if m.deposit.done {
		t.Fatal("rejected deposit should not complete")
	}
	if m.deposit.errMsg == "" {
		t.Error("rejected deposit should set an inline error")
	}
}

func TestIntegrationTransferRecordsHistory(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	m = processMsg(t, m, navigateMsg{view: viewSend})

	m = processMsg(t, m, sendSubmitMsg{amount: 2500, recipient: "Juan Soto", note: "lunch"})
	if !m.send.done {
		t.Fatal("transfer should reach the done state")
	}

	txs := m.wallet.History()
	if len(txs) == 0 || txs[0].Detail != "Transfer to Juan Soto · lunch" {
		t.Errorf("history head = %+v", txs)
	}
}

func TestIntegrationInsufficientFundsShowsError(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	m = processMsg(t, m, navigateMsg{view: viewSend})

	m = processMsg(t, m, sendSubmitMsg{amount: 1e9, recipient: "Juan Soto"})
	if m.send.done {
		t.Fatal("overdraft should not complete")
	}
	if m.send.errMsg == "" {
		t.Error("overdraft should set an inline error")
	}
}

func TestIntegrationSaveContactRefreshesSendView(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})
	m = processMsg(t, m, navigateMsg{view: viewSend})

	before := len(m.send.contacts)
	m = processMsg(t, m, saveContactMsg{name: "Pedro Paz"})
	if len(m.send.contacts) != before+1 {
		t.Errorf("contacts = %v", m.send.contacts)
	}
}

func TestIntegrationLogoutReturnsToLogin(t *testing.T) {
	m := setupModel(t)
	m = processMsg(t, m, loginSubmitMsg{email: "demo@zwallet.cl", password: "1234"})

	m = processMsg(t, m, logoutMsg{})
	if m.active != viewLogin {
		t.Fatalf("active = %d, want viewLogin after logout", m.active)
	}
	if _, ok := m.wallet.Session(); ok {
		t.Error("session should be gone after logout")
	}
}
