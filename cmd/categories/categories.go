// Package categories handles the categories command
package categories

import (
	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expense categories",
	Long:  `List the expense categories known to the backend, or the default set when it has none.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		categories, fallback := c.GetGateway().Categories(common.Context(cmd))
		return c.GetRenderer().Categories(cmd.OutOrStdout(), categories, fallback)
	},
}
