package domain

import (
	"errors"
	"strings"
	"unicode"
)

// AuthorizationStatus is the session state of the current user.
type AuthorizationStatus string

const (
	AuthStatusAuth    AuthorizationStatus = "AUTH"
	AuthStatusNoAuth  AuthorizationStatus = "NO_AUTH"
	AuthStatusUnknown AuthorizationStatus = "UNKNOWN"
)

// IsKnown reports whether the session check has resolved. UNKNOWN must not be
// treated as NO_AUTH for access decisions.
func (s AuthorizationStatus) IsKnown() bool {
	return s == AuthStatusAuth || s == AuthStatusNoAuth
}

// AuthInfo is the profile of the signed-in user.
type AuthInfo struct {
	Token     string
	Email     string
	Name      string
	AvatarURL string
	IsPro     bool
}

var (
	ErrInvalidEmail    = errors.New("email is not valid")
	ErrInvalidPassword = errors.New("password must contain at least one letter and one number")
)

// ValidateCredentials checks a sign-in form before it is sent.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrInvalidPassword
	}
	return nil
}
