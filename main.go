package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/auth"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/categories"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/dashboard"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/expense"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/goals"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/income"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/suggest"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/config"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Set the global log level before anything logs
	logrus.SetLevel(config.LevelFromEnv())

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(auth.LoginCmd)
	root.Cmd.AddCommand(auth.RegisterCmd)
	root.Cmd.AddCommand(auth.LogoutCmd)
	root.Cmd.AddCommand(expense.Cmd)
	root.Cmd.AddCommand(income.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(goals.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
