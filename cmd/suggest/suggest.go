// Package suggest handles the category suggestion command
package suggest

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Suggest a category for an expense description",
	Long: `Suggest a category for an expense description the way the entry form
does: the backend classifier first, then local keyword rules and Gemini
when they are configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: suggestFunc,
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	ctx := common.Context(cmd)
	description := strings.Join(args, " ")
	suggester := c.GetSuggester()

	if !suggester.ShouldQuery(description) {
		fmt.Fprintf(cmd.OutOrStdout(), "Description too short: more than %d characters are needed.\n", suggester.MinLength)
		return nil
	}

	c.KnownLabels(ctx, models.KindExpense)
	res := suggester.Suggest(ctx, description)
	if !res.OK {
		fmt.Fprintln(cmd.OutOrStdout(), "No suggestion.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Label, res.Source)
	return nil
}
