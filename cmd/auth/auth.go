// Package auth handles the login, register and logout commands
package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/container"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/entry"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/store"
)

// Credentials holds the login and register flag values
type Credentials struct {
	Username string
	Email    string
	Password string
}

var (
	loginFlags    = Credentials{}
	registerFlags = Credentials{}

	// LoginCmd represents the login command
	LoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Long: `Log in to the ExpenseWise backend. The token is stored in the token
file so later commands are authenticated.`,
		Args: cobra.NoArgs,
		RunE: loginFunc,
	}

	// RegisterCmd represents the register command
	RegisterCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		Long:  `Create an ExpenseWise account and keep its token like login does.`,
		Args:  cobra.NoArgs,
		RunE:  registerFunc,
	}

	// LogoutCmd represents the logout command
	LogoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			if err := c.GetSessionStore().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
)

func init() {
	LoginCmd.Flags().StringVarP(&loginFlags.Username, "username", "u", "", "Username")
	LoginCmd.Flags().StringVarP(&loginFlags.Password, "password", "p", "", "Password (prompted when omitted)")

	RegisterCmd.Flags().StringVarP(&registerFlags.Username, "username", "u", "", "Username")
	RegisterCmd.Flags().StringVarP(&registerFlags.Email, "email", "e", "", "Email address")
	RegisterCmd.Flags().StringVarP(&registerFlags.Password, "password", "p", "", "Password (prompted when omitted)")
}

func password(cmd *cobra.Command, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	return common.Prompt(cmd, "Password: ")
}

func loginFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	pw, err := password(cmd, loginFlags.Password)
	if err != nil {
		return err
	}
	if err := entry.ValidateLogin(loginFlags.Username, pw); err != nil {
		return common.Fail(err, "")
	}

	result, err := c.GetGateway().Login(common.Context(cmd), loginFlags.Username, pw)
	if err != nil {
		return common.Fail(err, "Login failed")
	}
	return keepSession(cmd, c, loginFlags.Username, result)
}

func registerFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	pw, err := password(cmd, registerFlags.Password)
	if err != nil {
		return err
	}
	if err := entry.ValidateRegister(registerFlags.Username, registerFlags.Email, pw); err != nil {
		return common.Fail(err, "")
	}

	result, err := c.GetGateway().Register(common.Context(cmd), registerFlags.Username, registerFlags.Email, pw)
	if err != nil {
		return common.Fail(err, "Registration failed")
	}
	return keepSession(cmd, c, registerFlags.Username, result)
}

func keepSession(cmd *cobra.Command, c *container.Container, username string, result models.AuthResult) error {
	if result.User.Username != "" {
		username = result.User.Username
	}
	session := store.Session{Token: result.Token, Username: username, SavedAt: time.Now()}
	if err := c.GetSessionStore().Save(session); err != nil {
		return fmt.Errorf("failed to store the session: %w", err)
	}
	root.Log.Debug("Session stored", logging.Field{Key: logging.FieldStatus, Value: "authenticated"})
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", username)
	return nil
}
