// Package income handles the income commands
package income

import (
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/common"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Cmd represents the income command
var Cmd = common.NewRecordCommand(models.KindIncome, "income", "Record, list, edit, delete and export income")
