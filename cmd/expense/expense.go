// Package expense handles the expense commands
package expense

import (
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Cmd represents the expense command
var Cmd = common.NewRecordCommand(models.KindExpense, "expense", "Record, list, edit, delete and export expenses")
