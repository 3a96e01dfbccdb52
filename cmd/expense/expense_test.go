package expense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/expense"
)

func TestExpenseCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expense", expense.Cmd.Use)
	assert.Contains(t, expense.Cmd.Short, "expenses")
	assert.Contains(t, expense.Cmd.Long, "Manage expense records")
}

func TestExpenseCommand_Flags(t *testing.T) {
	add, _, err := expense.Cmd.Find([]string{"add"})
	require.NoError(t, err)

	categoryFlag := add.Flags().Lookup("category")
	require.NotNil(t, categoryFlag)
	assert.Equal(t, "c", categoryFlag.Shorthand)

	amountFlag := add.Flags().Lookup("amount")
	require.NotNil(t, amountFlag)
	assert.Equal(t, "a", amountFlag.Shorthand)

	del, _, err := expense.Cmd.Find([]string{"delete"})
	require.NoError(t, err)
	yesFlag := del.Flags().Lookup("yes")
	require.NotNil(t, yesFlag)
	assert.Equal(t, "false", yesFlag.DefValue)
}
