// Package common contains shared functionality for command handlers
package common

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
)

// UserError carries the message shown to the user and the error behind it.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// Fail turns err into a UserError. Validation errors keep every reason; a
// 401 without a backend message asks the user to log in.
func Fail(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		return &UserError{Message: ve.Error(), Err: err}
	}
	msg := apperror.UserMessage(err, fallback)
	if msg == fallback && apperror.IsStatus(err, http.StatusUnauthorized) {
		msg = apperror.ErrNotAuthenticated.Error()
	}
	return &UserError{Message: msg, Err: err}
}

// Context returns the command's context, or a background one.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Prompt writes label and reads one line from the command's input.
func Prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question; anything but y or yes declines.
func Confirm(cmd *cobra.Command, question string) bool {
	answer, err := Prompt(cmd, question+" [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
