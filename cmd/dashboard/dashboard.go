// Package dashboard handles the dashboard command
package dashboard

import (
	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// Recent is the number of latest transactions shown
var Recent int

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals, balance and spending per category",
	Long: `Fetch expenses and income together and show total income, total
expenses, the balance and the spending of each category.`,
	Args: cobra.NoArgs,
	RunE: dashboardFunc,
}

func init() {
	Cmd.Flags().IntVarP(&Recent, "recent", "r", 5, "Number of recent transactions to show (0 hides them)")
}

func dashboardFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}

	snap, err := c.GetDashboard().Load(common.Context(cmd))
	if err != nil {
		return common.Fail(err, "failed to load the dashboard")
	}
	root.Log.Debug("Dashboard loaded",
		logging.Field{Key: logging.FieldCount, Value: len(snap.Expenses) + len(snap.Income)})

	return c.GetRenderer().Dashboard(cmd.OutOrStdout(), snap, Recent)
}
