package site

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAccount is returned when new credentials are rejected.
var ErrInvalidAccount = errors.New("invalid account")

const maxPasswordBytes = 72 // bcrypt ignores anything longer

// Accounts holds the single admin credential pair.
// Only a bcrypt hash of the password is kept.
type Accounts struct {
	minLength int
	cost      int

	mu   sync.RWMutex
	user string
	hash []byte
}

// NewAccounts creates the store with an initial pair. The initial pair is
// subject to the same checks as Update. A cost of 0 means bcrypt.DefaultCost.
func NewAccounts(user, password string, minLength, cost int) (*Accounts, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	a := &Accounts{minLength: minLength, cost: cost}
	if err := a.Update(user, password); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the user and password together.
func (a *Accounts) Update(user, password string) error {
	switch {
	case user == "":
		return fmt.Errorf("%w: user is required", ErrInvalidAccount)
	case utf8.RuneCountInString(password) < a.minLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidAccount, a.minLength)
	case len(password) > maxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidAccount, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.hash = hash
	return nil
}

// Check reports whether user and password match the current pair.
func (a *Accounts) Check(user, password string) bool {
	a.mu.RLock()
	current, hash := a.user, a.hash
	a.mu.RUnlock()

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(current)) == 1
	// Always compare the hash so a wrong user costs the same as a wrong password.
	passOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return userOK && passOK
}

// User returns the current admin user name.
func (a *Accounts) User() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}
