// Package contacts keeps the deduplicated list of transfer recipients.
// Names keep their insertion order; uniqueness ignores letter case.
package contacts

import (
	"errors"
	"strings"

	"github.com/zarlcorp/zwallet/internal/foldset"
	"github.com/zarlcorp/zwallet/internal/kvstore"
)

const contactsKey = "contacts"

// minNameLen is the shortest accepted contact name after trimming.
const minNameLen = 2

// ErrInvalidName is returned by Add when the trimmed name is too short.
var ErrInvalidName = errors.New("contact name must be at least 2 characters")

// Book reads and writes the contact list through the store.
type Book struct {
	store *kvstore.Store
}

// New creates a contact book over the given store.
func New(store *kvstore.Store) *Book {
	return &Book{store: store}
}

// List returns the saved names in insertion order.
func (b *Book) List() []string {
	names, _ := kvstore.GetRecord(b.store, contactsKey, []string(nil))
	return names
}

// Add saves a new contact. A case-insensitive duplicate is a no-op and
// reports added=false. Recording the addition in the ledger is the
// caller's concern.
func (b *Book) Add(name string) (added bool, err error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < minNameLen {
		return false, ErrInvalidName
	}

	set := foldset.New(b.List()...)
	if !set.Add(name) {
		return false, nil
	}

	if err := kvstore.SetRecord(b.store, contactsKey, set.Items()); err != nil {
		return false, err
	}
	return true, nil
}

// Seed stores the given names verbatim, replacing any stored list.
// Used only by the bootstrap on a fresh store.
func (b *Book) Seed(names []string) error {
	return kvstore.SetRecord(b.store, contactsKey, names)
}
