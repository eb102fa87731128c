// Package kvstore provides an encrypted key-value store backed by a
// filesystem. Each logical key is stored as an individual AES-256-GCM
// encrypted file holding either a raw scalar or a JSON record.
//
// Reads never fail: a missing key yields the caller's fallback with
// StatusAbsent, and an unreadable or malformed value yields the fallback
// with StatusRecovered, so callers can tell true absence from recovery.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
)

const (
	saltFile    = "salt"
	verifyFile  = "verify"
	valuesDir   = "values"
	verifyToken = "zwallet-store-ok"
)

// ErrWrongPassword is returned by Open when the master password does not
// match the store's verification token.
var ErrWrongPassword = errors.New("wrong password")

// ReadStatus reports how a read was satisfied.
type ReadStatus int

const (
	// StatusPresent means the stored value was returned.
	StatusPresent ReadStatus = iota
	// StatusAbsent means no value was stored; the fallback was returned.
	StatusAbsent
	// StatusRecovered means a value was stored but could not be read back
	// (decryption or decoding failed); the fallback was returned.
	StatusRecovered
)

func (s ReadStatus) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusAbsent:
		return "absent"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Store manages encrypted value files on a filesystem.
type Store struct {
	fs  zfilesystem.ReadWriteFileFS
	key []byte
}

// Open opens or initializes an encrypted store.
// On first run it creates the salt and verification token.
// On subsequent runs it verifies the password by decrypting the token.
func Open(fsys zfilesystem.ReadWriteFileFS, password string) (*Store, error) {
	salt, err := readOrCreateSalt(fsys)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	key, _, err := zcrypto.DeriveKey([]byte(password), salt)
	if err != nil {
		return nil, fmt.Errorf("open store: derive key: %w", err)
	}

	if err := verifyOrCreateToken(fsys, key); err != nil {
		zcrypto.Erase(key)
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := fsys.MkdirAll(valuesDir, 0o700); err != nil {
		zcrypto.Erase(key)
		return nil, fmt.Errorf("open store: create values dir: %w", err)
	}

	return &Store{fs: fsys, key: key}, nil
}

// SetScalar encrypts and writes a plain string value under key.
func (s *Store) SetScalar(key, value string) error {
	return s.write(key, []byte(value))
}

// GetScalar reads a plain string value. The status distinguishes a stored
// value from absence and from an unreadable value.
func (s *Store) GetScalar(key string) (string, ReadStatus) {
	data, status := s.read(key)
	if status != StatusPresent {
		return "", status
	}
	return string(data), StatusPresent
}

// SetRecord encrypts and writes v as JSON under key.
func SetRecord[T any](s *Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("set %s: marshal: %w", key, err)
	}
	return s.write(key, data)
}

// GetRecord reads a JSON record. A missing key returns fallback with
// StatusAbsent; a value that fails to decrypt or decode returns fallback
// with StatusRecovered. It never returns an error.
func GetRecord[T any](s *Store, key string, fallback T) (T, ReadStatus) {
	data, status := s.read(key)
	if status != StatusPresent {
		return fallback, status
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fallback, StatusRecovered
	}
	return v, StatusPresent
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.fs.Remove(valuePath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close erases the encryption key from memory.
func (s *Store) Close() error {
	zcrypto.Erase(s.key)
	s.key = nil
	return nil
}

func (s *Store) write(key string, data []byte) error {
	ct, err := zcrypto.Encrypt(s.key, data)
	if err != nil {
		return fmt.Errorf("set %s: encrypt: %w", key, err)
	}
	if err := s.fs.WriteFile(valuePath(key), ct, 0o600); err != nil {
		return fmt.Errorf("set %s: write: %w", key, err)
	}
	return nil
}

func (s *Store) read(key string) ([]byte, ReadStatus) {
	ct, err := s.fs.ReadFile(valuePath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, StatusAbsent
		}
		return nil, StatusRecovered
	}

	data, err := zcrypto.Decrypt(s.key, ct)
	if err != nil {
		return nil, StatusRecovered
	}
	return data, StatusPresent
}

func readOrCreateSalt(fsys zfilesystem.ReadWriteFileFS) ([]byte, error) {
	salt, err := fsys.ReadFile(saltFile)
	if err == nil {
		return salt, nil
	}

	salt, err = zcrypto.RandBytes(zcrypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	if err := fsys.WriteFile(saltFile, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write salt: %w", err)
	}

	return salt, nil
}

func verifyOrCreateToken(fsys zfilesystem.ReadWriteFileFS, key []byte) error {
	ct, err := fsys.ReadFile(verifyFile)
	if err != nil {
		// first run, create the verification token
		ct, err = zcrypto.Encrypt(key, []byte(verifyToken))
		if err != nil {
			return fmt.Errorf("encrypt verify token: %w", err)
		}

		if err := fsys.WriteFile(verifyFile, ct, 0o600); err != nil {
			return fmt.Errorf("write verify token: %w", err)
		}

		return nil
	}

	plain, err := zcrypto.Decrypt(key, ct)
	if err != nil {
		return ErrWrongPassword
	}

	if string(plain) != verifyToken {
		return ErrWrongPassword
	}

	return nil
}

func valuePath(key string) string {
	return valuesDir + "/" + key + ".enc"
}
