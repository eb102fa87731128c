// Package directory holds the registered identities and the credential
// lookup used by login. Email uniqueness is case-insensitive.
package directory

import (
	"errors"
	"strings"

	"github.com/zarlcorp/zwallet/internal/foldset"
	"github.com/zarlcorp/zwallet/internal/kvstore"
)

const usersKey = "users"

// ErrDuplicateEmail is returned by Register when the email is already
// taken, in any letter case.
var ErrDuplicateEmail = errors.New("email is already registered")

// Identity is a registered user's credential record. The password is
// stored and compared in plain text; this wallet has no security model.
type Identity struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"name"`
}

// Directory reads and writes identities through the store.
type Directory struct {
	store *kvstore.Store
}

// New creates a directory over the given store.
func New(store *kvstore.Store) *Directory {
	return &Directory{store: store}
}

// FindByCredentials returns the identity matching the email
// (case-insensitive) and the exact password.
func (d *Directory) FindByCredentials(email, password string) (Identity, bool) {
	for _, id := range d.all() {
		if foldset.Equal(id.Email, email) && id.Password == password {
			return id, true
		}
	}
	return Identity{}, false
}

// ExistsByEmail reports whether any identity uses this email, ignoring case.
func (d *Directory) ExistsByEmail(email string) bool {
	for _, id := range d.all() {
		if foldset.Equal(id.Email, email) {
			return true
		}
	}
	return false
}

// Register appends a new identity. The caller guarantees non-empty fields
// and that any password confirmation already matched.
func (d *Directory) Register(email, password, displayName string) (Identity, error) {
	if d.ExistsByEmail(email) {
		return Identity{}, ErrDuplicateEmail
	}

	id := Identity{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Password:    password,
		DisplayName: strings.TrimSpace(displayName),
	}

	users := append(d.all(), id)
	if err := kvstore.SetRecord(d.store, usersKey, users); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Seed stores the given identities verbatim, replacing any stored list.
// Used only by the bootstrap on a fresh store.
func (d *Directory) Seed(ids []Identity) error {
	return kvstore.SetRecord(d.store, usersKey, ids)
}

// Count returns the number of registered identities.
func (d *Directory) Count() int { return len(d.all()) }

func (d *Directory) all() []Identity {
	users, _ := kvstore.GetRecord(d.store, usersKey, []Identity(nil))
	return users
}
