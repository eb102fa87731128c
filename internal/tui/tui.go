// Package tui implements the root Bubble Tea model for zwallet.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zwallet/internal/kvstore"
	"github.com/zarlcorp/zwallet/internal/wallet"
)

type viewID int

const (
	viewUnlock viewID = iota
	viewLogin
	viewRegister
	viewMenu
	viewDeposit
	viewSend
	viewHistory
)

// accent is the wallet's header and logo color.
var accent = lipgloss.Color("42")

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	firstRun bool

	store  *kvstore.Store
	wallet *wallet.Wallet

	active   viewID
	unlock   unlockModel
	login    loginModel
	register registerModel
	menu     menuModel
	deposit  depositModel
	send     sendModel
	history  historyModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		firstRun: firstRun,
		active:   viewUnlock,
		unlock:   newUnlockModel(firstRun),
	}
}

// Close releases the store if it was opened.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}

func (m Model) Init() tea.Cmd {
	return m.unlock.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case unlockSubmitMsg:
		return m.openStore(msg.password)

	case loginSubmitMsg:
		return m.handleLogin(msg.email, msg.password)

	case registerSubmitMsg:
		return m.handleRegister(msg)

	case depositSubmitMsg:
		return m.handleDeposit(msg.amount, msg.source)

	case sendSubmitMsg:
		return m.handleTransfer(msg.amount, msg.recipient, msg.note)

	case saveContactMsg:
		return m.handleSaveContact(msg.name)

	case logoutMsg:
		return m.handleLogout()

	case navigateMsg:
		return m.navigate(msg.view)
	}

	var cmd tea.Cmd
	switch m.active {
	case viewUnlock:
		m.unlock, cmd = m.unlock.Update(msg)
	case viewLogin:
		m.login, cmd = m.login.Update(msg)
	case viewRegister:
		m.register, cmd = m.register.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewDeposit:
		m.deposit, cmd = m.deposit.Update(msg)
	case viewSend:
		m.send, cmd = m.send.Update(msg)
	case viewHistory:
		m.history, cmd = m.history.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.unlock, _ = m.unlock.Update(unlockErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	fsys := zfilesystem.NewOSFileSystem(m.dataDir)
	s, err := kvstore.Open(fsys, password)
	if err != nil {
		m.unlock, _ = m.unlock.Update(unlockErrMsg{err: err})
		return m, nil
	}

	w, err := wallet.Open(s)
	if err != nil {
		s.Close()
		m.unlock, _ = m.unlock.Update(unlockErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.wallet = w

	// a persisted session skips the login page
	if _, ok := w.Session(); ok {
		return m.navigate(viewMenu)
	}
	return m.navigate(viewLogin)
}

func (m Model) handleLogin(email, password string) (tea.Model, tea.Cmd) {
	if _, err := m.wallet.Login(email, password); err != nil {
		m.login, _ = m.login.Update(loginErrMsg{err: err})
		return m, nil
	}
	return m.navigate(viewMenu)
}

func (m Model) handleRegister(msg registerSubmitMsg) (tea.Model, tea.Cmd) {
	_, err := m.wallet.Register(msg.email, msg.password, msg.confirm, msg.displayName)
	if err != nil {
		m.register, _ = m.register.Update(registerErrMsg{err: err})
		return m, nil
	}
	return m.navigate(viewMenu)
}

func (m Model) handleDeposit(amount float64, source string) (tea.Model, tea.Cmd) {
	balance, err := m.wallet.Deposit(amount, source)
	if err != nil {
		m.deposit, _ = m.deposit.Update(depositErrMsg{err: err})
		return m, nil
	}

	var cmd tea.Cmd
	m.deposit, cmd = m.deposit.Update(depositDoneMsg{amount: amount, balance: balance})
	return m, cmd
}

func (m Model) handleTransfer(amount float64, recipient, note string) (tea.Model, tea.Cmd) {
	balance, err := m.wallet.Transfer(amount, recipient, note)
	if err != nil {
		m.send, _ = m.send.Update(sendErrMsg{err: err})
		return m, nil
	}

	var cmd tea.Cmd
	m.send, cmd = m.send.Update(sendDoneMsg{amount: amount, recipient: recipient, balance: balance})
	return m, cmd
}

func (m Model) handleSaveContact(name string) (tea.Model, tea.Cmd) {
	added, err := m.wallet.AddContact(name)
	if err != nil {
		m.send, _ = m.send.Update(sendErrMsg{err: err})
		return m, nil
	}

	m.send, _ = m.send.Update(contactSavedMsg{
		added:    added,
		contacts: m.wallet.Contacts(),
	})
	return m, nil
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if err := m.wallet.Logout(); err != nil {
		return m, nil
	}
	return m.navigate(viewLogin)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	session, loggedIn := m.wallet.Session()

	// views are guarded both ways: private views bounce to login without
	// a session, and login/register bounce to the menu with one
	switch view {
	case viewMenu, viewDeposit, viewSend, viewHistory:
		if !loggedIn {
			view = viewLogin
		}
	case viewLogin, viewRegister:
		if loggedIn {
			view = viewMenu
		}
	}

	switch view {
	case viewLogin:
		m.login = newLoginModel()
		m.active = viewLogin
		return m, tea.Batch(tea.ClearScreen, m.login.Init())

	case viewRegister:
		m.register = newRegisterModel()
		m.active = viewRegister
		return m, tea.Batch(tea.ClearScreen, m.register.Init())

	case viewMenu:
		m.menu = newMenuModel(m.version, session.DisplayName, m.wallet.Balance())
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewDeposit:
		m.deposit = newDepositModel()
		m.active = viewDeposit
		return m, tea.Batch(tea.ClearScreen, m.deposit.Init())

	case viewSend:
		m.send = newSendModel(m.wallet.Contacts())
		m.active = viewSend
		return m, tea.Batch(tea.ClearScreen, m.send.Init())

	case viewHistory:
		m.history = newHistoryModel(m.wallet.History())
		m.active = viewHistory
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) View() string {
	var content string

	switch m.active {
	case viewUnlock:
		content = m.unlock.View()
	case viewLogin:
		content = m.login.View()
	case viewRegister:
		content = m.register.View()
	case viewMenu:
		content = m.menu.View()
	case viewDeposit:
		content = m.deposit.View()
	case viewSend:
		content = m.send.View()
	case viewHistory:
		content = m.history.View()
	}

	if m.active == viewUnlock {
		return content
	}

	header := zstyle.RenderHeader("zwallet", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewLogin:
		return "Sign In"
	case viewRegister:
		return "Create Account"
	case viewMenu:
		return "Menu"
	case viewDeposit:
		return "Deposit Funds"
	case viewSend:
		return "Send Money"
	case viewHistory:
		return "Transactions"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewLogin:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "sign in"},
			{Key: "ctrl+r", Desc: "register"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewRegister:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "create"},
			{Key: "esc", Desc: "sign in"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewMenu:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "select"},
			{Key: "q", Desc: "quit"},
		}
	case viewDeposit:
		return []zstyle.HelpPair{
			{Key: "space", Desc: "cycle source"},
			{Key: "enter", Desc: "deposit"},
			{Key: "esc", Desc: "back"},
		}
	case viewSend:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "send / pick"},
			{Key: "ctrl+a", Desc: "save contact"},
			{Key: "esc", Desc: "back"},
		}
	case viewHistory:
		return []zstyle.HelpPair{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}
