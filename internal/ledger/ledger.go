// Package ledger owns the wallet balance and the append-only transaction
// history. Every balance mutation appends exactly one matching transaction
// in the same operation; a failed validation leaves both untouched.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zarlcorp/zwallet/internal/kvstore"
	"github.com/zarlcorp/zwallet/internal/money"
)

const (
	balanceKey      = "balance"
	transactionsKey = "transactions"

	// MaxTransactions bounds the history: on every append the oldest
	// entries beyond the cap are dropped, with no archival.
	MaxTransactions = 100

	// DateFormat is the calendar-date form stored on each transaction.
	DateFormat = "2006-01-02"
)

// ErrInvalidAmount is returned when an amount is NaN, infinite, or not
// greater than zero.
var ErrInvalidAmount = errors.New("amount must be a finite number greater than zero")

// InsufficientFundsError is returned when a withdrawal exceeds the balance.
// It carries the current balance so callers can render it.
type InsufficientFundsError struct {
	Balance money.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available balance is %s", e.Balance.Format())
}

// Kind classifies a transaction.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindTransfer Kind = "transfer"
	KindInfo     Kind = "info"
)

// Transaction is one immutable audit entry. Entries are never edited or
// deleted individually; the history is newest first.
type Transaction struct {
	Date   string  `json:"date"`
	Kind   Kind    `json:"kind"`
	Amount float64 `json:"amount"`
	Detail string  `json:"detail"`
}

// Ledger reads and mutates the balance and history through the store.
type Ledger struct {
	store *kvstore.Store
	now   func() time.Time
}

// New creates a ledger over the given store.
func New(store *kvstore.Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Balance returns the current balance. A missing or unreadable stored
// value reads as zero.
func (l *Ledger) Balance() money.Amount {
	raw, status := l.store.GetScalar(balanceKey)
	if status != kvstore.StatusPresent {
		return money.Amount{}
	}
	a, err := money.Parse(raw)
	if err != nil {
		return money.Amount{}
	}
	return a
}

// SetBalance overwrites the stored balance. Used by the seeding bootstrap;
// normal mutation goes through Deposit and Withdraw.
func (l *Ledger) SetBalance(a money.Amount) error {
	return l.store.SetScalar(balanceKey, a.String())
}

// Deposit adds amount to the balance and appends a Deposit transaction
// naming the funding source. It returns the new balance.
func (l *Ledger) Deposit(amount float64, sourceLabel string) (money.Amount, error) {
	a, err := validAmount(amount)
	if err != nil {
		return money.Amount{}, err
	}

	if sourceLabel == "" {
		sourceLabel = "Unspecified"
	}

	newBalance := l.Balance().Add(a)
	tx := Transaction{
		Date:   l.now().Format(DateFormat),
		Kind:   KindDeposit,
		Amount: amount,
		Detail: fmt.Sprintf("Deposit received · Source: %s", sourceLabel),
	}
	if err := l.commit(newBalance, tx); err != nil {
		return money.Amount{}, err
	}
	return newBalance, nil
}

// Withdraw subtracts amount from the balance and appends a Transfer
// transaction naming the recipient and, when given, the note. It returns
// the new balance. The balance never goes below zero.
func (l *Ledger) Withdraw(amount float64, recipient, note string) (money.Amount, error) {
	a, err := validAmount(amount)
	if err != nil {
		return money.Amount{}, err
	}

	balance := l.Balance()
	if a.GreaterThan(balance) {
		return money.Amount{}, &InsufficientFundsError{Balance: balance}
	}

	detail := fmt.Sprintf("Transfer to %s", recipient)
	if note != "" {
		detail = fmt.Sprintf("Transfer to %s · %s", recipient, note)
	}

	newBalance := balance.Sub(a)
	tx := Transaction{
		Date:   l.now().Format(DateFormat),
		Kind:   KindTransfer,
		Amount: amount,
		Detail: detail,
	}
	if err := l.commit(newBalance, tx); err != nil {
		return money.Amount{}, err
	}
	return newBalance, nil
}

// RecordInfo appends a zero-amount Info transaction for a non-monetary
// event. The balance is not touched.
func (l *Ledger) RecordInfo(detail string) error {
	return l.append(Transaction{
		Date:   l.now().Format(DateFormat),
		Kind:   KindInfo,
		Detail: detail,
	})
}

// Transactions returns the history, newest first, at most MaxTransactions.
func (l *Ledger) Transactions() []Transaction {
	list, _ := kvstore.GetRecord(l.store, transactionsKey, []Transaction(nil))
	return list
}

// commit writes the new balance together with its audit entry.
func (l *Ledger) commit(newBalance money.Amount, tx Transaction) error {
	if err := l.append(tx); err != nil {
		return err
	}
	return l.SetBalance(newBalance)
}

// append inserts tx at the head and enforces the cap over the whole list,
// so an oversized stored history shrinks on the next append too.
func (l *Ledger) append(tx Transaction) error {
	list, _ := kvstore.GetRecord(l.store, transactionsKey, []Transaction(nil))
	list = append([]Transaction{tx}, list...)
	if len(list) > MaxTransactions {
		list = list[:MaxTransactions]
	}
	return kvstore.SetRecord(l.store, transactionsKey, list)
}

func validAmount(amount float64) (money.Amount, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return money.Amount{}, ErrInvalidAmount
	}
	a, err := money.FromFloat(amount)
	if err != nil || !a.IsPositive() {
		return money.Amount{}, ErrInvalidAmount
	}
	return a, nil
}
