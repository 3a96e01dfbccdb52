package entry

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Field names for the login and register forms.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// ValidateLogin checks the login form before any network call.
func ValidateLogin(username, password string) error {
	ve := &apperror.ValidationError{}
	if strings.TrimSpace(username) == "" {
		ve.Add(FieldUsername, "is required")
	}
	if password == "" {
		ve.Add(FieldPassword, "is required")
	}
	return ve.OrNil()
}

// ValidateRegister checks the registration form before any network call.
func ValidateRegister(username, email, password string) error {
	ve := &apperror.ValidationError{}
	if strings.TrimSpace(username) == "" {
		ve.Add(FieldUsername, "is required")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		ve.Add(FieldEmail, "is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		ve.Add(FieldEmail, "must be a valid email address")
	}

	switch {
	case password == "":
		ve.Add(FieldPassword, "is required")
	case utf8.RuneCountInString(password) < MinPasswordLength:
		ve.Add(FieldPassword, "must be at least 6 characters")
	}
	return ve.OrNil()
}
