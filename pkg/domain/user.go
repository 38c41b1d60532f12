package domain

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const nameMaxLen = 50

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a registered account. It may own places and author reviews; both
// only reference it.
type User struct {
	Base

	FirstName string
	LastName  string
	// Email is unique among users. Uniqueness is checked by the facade, not here.
	Email   string
	IsAdmin bool

	passwordHash string
}

// UserParams holds the fields accepted when registering a user.
type UserParams struct {
	FirstName string
	LastName  string
	Email     string
	// Password is hashed on construction when not empty.
	Password string
	IsAdmin  bool
}

var _ Entity = (*User)(nil)

// NewUser builds and validates a User.
func NewUser(p UserParams) (*User, error) {
	u := &User{
		Base:      newBase(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		IsAdmin:   p.IsAdmin,
	}
	if p.Password != "" {
		if err := u.SetPassword(p.Password); err != nil {
			return nil, err
		}
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate implements Entity.
func (u *User) Validate() error {
	if err := checkText("first_name", u.FirstName, true, nameMaxLen); err != nil {
		return err
	}
	if err := checkText("last_name", u.LastName, true, nameMaxLen); err != nil {
		return err
	}
	if isBlank(u.Email) {
		return invalid("email", "is required")
	}
	if !emailRe.MatchString(u.Email) {
		return invalid("email", "must be a valid email address")
	}

	return nil
}

// Update implements Entity. Recognized keys: first_name, last_name, email,
// is_admin and password (hashed through SetPassword).
func (u *User) Update(patch Patch) error {
	return stagedUpdate(u, patch)
}

func (u *User) set(key string, value any) error {
	var err error
	switch key {
	case "first_name":
		u.FirstName, err = asString(key, value)
	case "last_name":
		u.LastName, err = asString(key, value)
	case "email":
		u.Email, err = asString(key, value)
	case "is_admin":
		u.IsAdmin, err = asBool(key, value)
	case "password":
		var plain string
		if plain, err = asString(key, value); err == nil {
			err = u.SetPassword(plain)
		}
	}

	return err
}

// Attribute implements Entity. The password hash is never exposed.
func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "email":
		return u.Email, true
	case "is_admin":
		return u.IsAdmin, true
	}

	return u.attribute(name)
}

// SetPassword replaces the stored hash with a bcrypt hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return invalid("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return invalid("password", "must be at most 72 bytes")
		}

		return fmt.Errorf("could not hash password: %w", err)
	}
	u.passwordHash = string(hash)

	return nil
}

// VerifyPassword reports whether plaintext matches the stored hash. It is
// false when no password was ever set.
func (u *User) VerifyPassword(plaintext string) bool {
	if u.passwordHash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(plaintext)) == nil
}

// HasPassword reports whether a password hash is set.
func (u *User) HasPassword() bool { return u.passwordHash != "" }

// HashedPassword returns the stored hash. It exists for persistence adapters only.
func (u *User) HashedPassword() string { return u.passwordHash }

// RestoreHashedPassword sets the stored hash as loaded from a durable store.
// It exists for persistence adapters only.
func (u *User) RestoreHashedPassword(hash string) { u.passwordHash = hash }
