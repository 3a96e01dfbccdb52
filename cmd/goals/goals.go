// Package goals handles the goals command
package goals

import (
	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
)

// Cmd represents the goals command
var Cmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings goals and their progress",
	Long:  `List the savings goals stored on the backend with the progress it computed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		goals, err := c.GetGateway().Goals(common.Context(cmd))
		if err != nil {
			return common.Fail(err, "failed to load goals")
		}
		return c.GetRenderer().Goals(cmd.OutOrStdout(), goals)
	},
}
