// Package wallet wires the store-backed components into one explicit
// application state object and implements the user-facing operations:
// login, registration, deposits, transfers, contacts, and history. It owns
// the policies that span components, such as pairing a ledger info entry
// with account creation or a saved contact.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zarlcorp/zwallet/internal/contacts"
	"github.com/zarlcorp/zwallet/internal/directory"
	"github.com/zarlcorp/zwallet/internal/kvstore"
	"github.com/zarlcorp/zwallet/internal/ledger"
	"github.com/zarlcorp/zwallet/internal/money"
	"github.com/zarlcorp/zwallet/internal/session"
)

const seededKey = "seeded"

// startingBalance is the demo balance written once on a fresh store.
const startingBalance = 100000

var (
	// ErrAuthenticationFailed is returned by Login when no identity
	// matches the given credentials.
	ErrAuthenticationFailed = errors.New("email or password is incorrect")

	// ErrPasswordMismatch is returned by Register when the confirmation
	// does not equal the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMissingFields is returned by Register when a required field is
	// empty after trimming.
	ErrMissingFields = errors.New("name, email and password are required")

	// ErrMissingRecipient is returned by Transfer when no recipient is
	// given.
	ErrMissingRecipient = errors.New("a recipient is required")
)

// Wallet is the application state: every operation goes through it. It is
// constructed by Open and discarded with the store; there is no ambient
// global state.
type Wallet struct {
	store     *kvstore.Store
	directory *directory.Directory
	sessions  *session.Manager
	ledger    *ledger.Ledger
	contacts  *contacts.Book
}

// Open builds a wallet over the store and runs the one-time seeding
// bootstrap. Opening an already-seeded store changes nothing.
func Open(store *kvstore.Store) (*Wallet, error) {
	w := &Wallet{
		store:     store,
		directory: directory.New(store),
		sessions:  session.New(store),
		ledger:    ledger.New(store),
		contacts:  contacts.New(store),
	}
	if err := w.seedIfNeeded(); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return w, nil
}

// seedIfNeeded populates a fresh store with demo data. The seeded sentinel
// guards the whole step; each key is additionally written only when absent,
// so a partially-populated store is never overwritten.
func (w *Wallet) seedIfNeeded() error {
	if _, status := w.store.GetScalar(seededKey); status != kvstore.StatusAbsent {
		return nil
	}

	if w.directory.Count() == 0 {
		err := w.directory.Seed([]directory.Identity{
			{Email: "demo@zwallet.cl", Password: "1234", DisplayName: "Demo User"},
			{Email: "admin@zwallet.cl", Password: "admin", DisplayName: "Administrator"},
		})
		if err != nil {
			return err
		}
	}

	if _, status := w.store.GetScalar("balance"); status == kvstore.StatusAbsent {
		if err := w.ledger.SetBalance(money.FromInt(startingBalance)); err != nil {
			return err
		}
	}

	if len(w.contacts.List()) == 0 {
		if err := w.contacts.Seed([]string{"María Pérez", "Juan Soto", "Camila Rojas"}); err != nil {
			return err
		}
	}

	if len(w.ledger.Transactions()) == 0 {
		if err := w.ledger.RecordInfo("Account initialized"); err != nil {
			return err
		}
	}

	return w.store.SetScalar(seededKey, "1")
}

// Session returns the active session, if any.
func (w *Wallet) Session() (session.Session, bool) {
	return w.sessions.Current()
}

// Login authenticates against the directory and starts a session.
func (w *Wallet) Login(email, password string) (session.Session, error) {
	id, ok := w.directory.FindByCredentials(email, password)
	if !ok {
		return session.Session{}, ErrAuthenticationFailed
	}

	s := session.Session{Email: id.Email, DisplayName: id.DisplayName}
	if err := w.sessions.Start(s); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

// Logout ends the session. Logging out while logged out is a no-op.
func (w *Wallet) Logout() error {
	return w.sessions.End()
}

// Register creates a new identity, starts its session, and records the
// creation in the ledger. The two password entries must be equal.
func (w *Wallet) Register(email, password, confirm, displayName string) (session.Session, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || password == "" || displayName == "" {
		return session.Session{}, ErrMissingFields
	}
	if password != confirm {
		return session.Session{}, ErrPasswordMismatch
	}

	id, err := w.directory.Register(email, password, displayName)
	if err != nil {
		return session.Session{}, err
	}

	s := session.Session{Email: id.Email, DisplayName: id.DisplayName}
	if err := w.sessions.Start(s); err != nil {
		return session.Session{}, err
	}
	if err := w.ledger.RecordInfo("Account created"); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

// Balance returns the current balance.
func (w *Wallet) Balance() money.Amount {
	return w.ledger.Balance()
}

// Deposit adds funds from the named source and returns the new balance.
func (w *Wallet) Deposit(amount float64, sourceLabel string) (money.Amount, error) {
	return w.ledger.Deposit(amount, sourceLabel)
}

// Transfer sends funds to a recipient with an optional note and returns
// the new balance.
func (w *Wallet) Transfer(amount float64, recipient, note string) (money.Amount, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return money.Amount{}, ErrMissingRecipient
	}
	return w.ledger.Withdraw(amount, recipient, strings.TrimSpace(note))
}

// AddContact saves a recipient name and, when it is actually new, records
// the addition in the ledger.
func (w *Wallet) AddContact(name string) (added bool, err error) {
	added, err = w.contacts.Add(name)
	if err != nil || !added {
		return added, err
	}
	if err := w.ledger.RecordInfo(fmt.Sprintf("Contact added: %s", strings.TrimSpace(name))); err != nil {
		return true, err
	}
	return true, nil
}

// Contacts returns the saved recipient names in insertion order.
func (w *Wallet) Contacts() []string {
	return w.contacts.List()
}

// History returns the transaction history, newest first.
func (w *Wallet) History() []ledger.Transaction {
	return w.ledger.Transactions()
}
