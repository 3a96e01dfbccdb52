// Package entry drives the create/edit flow for expenses and income and the
// list views they return to. It holds the draft and its state machine; the
// host decides how to render them.
package entry

import (
	"errors"
	"strings"
	"time"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/currencyutils"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/dateutils"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Field names reported in validation errors.
const (
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldDate        = "date"
)

// Form is a draft record holding the raw user input.
type Form struct {
	Kind        models.Kind
	ID          models.ID
	Amount      string
	Description string
	Label       string
	Date        string

	// original is the label of the record being edited. It stays valid
	// even when it is no longer among the known labels.
	original string
}

// NewCreateForm returns an empty draft dated today.
func NewCreateForm(kind models.Kind, today time.Time) Form {
	return Form{Kind: kind, Date: dateutils.ToISODate(dateutils.Today(today))}
}

// NewEditForm returns a draft pre-filled from rec.
func NewEditForm(rec models.TransactionRecord) Form {
	return Form{
		Kind:        rec.Kind,
		ID:          rec.ID,
		Amount:      rec.Amount.String(),
		Description: rec.Description,
		Label:       rec.Label,
		Date:        rec.Date.String(),
		original:    strings.TrimSpace(rec.Label),
	}
}

// IsEdit reports whether the draft updates an existing record.
func (f Form) IsEdit() bool {
	return f.ID != ""
}

// LabelField is "category" or "source" depending on the kind.
func (f Form) LabelField() string {
	return f.Kind.LabelField()
}

// Validate checks every field and returns the record to submit. known is
// the set of acceptable labels; the match is case-insensitive and the
// returned record uses the spelling from known. All failing fields are
// reported together in an *apperror.ValidationError.
func (f Form) Validate(today time.Time, known []string) (models.TransactionRecord, error) {
	ve := &apperror.ValidationError{}
	rec := models.TransactionRecord{Kind: f.Kind, ID: f.ID}

	amount, err := currencyutils.ParseAmount(f.Amount)
	switch {
	case errors.Is(err, currencyutils.ErrEmptyAmount):
		ve.Add(FieldAmount, "is required")
	case errors.Is(err, currencyutils.ErrNegativeAmount):
		ve.Add(FieldAmount, "must not be negative")
	case err != nil:
		ve.Add(FieldAmount, "must be a number")
	default:
		rec.Amount = models.NewAmount(amount)
	}

	rec.Description = strings.TrimSpace(f.Description)
	if rec.Description == "" {
		ve.Add(FieldDescription, "is required")
	}

	if len(known) == 0 {
		known = DefaultLabels(f.Kind)
	}
	label := strings.TrimSpace(f.Label)
	switch {
	case label == "":
		ve.Add(f.LabelField(), "is required")
	default:
		canonical, ok := f.matchLabel(label, known)
		if !ok {
			ve.Add(f.LabelField(), "must be one of: "+strings.Join(known, ", "))
		}
		rec.Label = canonical
	}

	if strings.TrimSpace(f.Date) == "" {
		ve.Add(FieldDate, "is required")
	} else if d, err := models.ParseDate(f.Date); err != nil {
		ve.Add(FieldDate, "must be a date (YYYY-MM-DD)")
	} else if dateutils.IsFuture(d.Time, dateutils.Today(today)) {
		ve.Add(FieldDate, "must not be in the future")
	} else {
		rec.Date = d
	}

	if err := ve.OrNil(); err != nil {
		return models.TransactionRecord{}, err
	}
	return rec, nil
}

func (f Form) matchLabel(label string, known []string) (string, bool) {
	if f.original != "" && strings.EqualFold(label, f.original) {
		return f.original, true
	}
	for _, k := range known {
		if strings.EqualFold(strings.TrimSpace(k), label) {
			return strings.TrimSpace(k), true
		}
	}
	return label, false
}

// DefaultLabels is the label set used when no other is supplied: the
// default categories for expenses, the fixed sources for income.
func DefaultLabels(kind models.Kind) []string {
	if kind == models.KindIncome {
		return models.DefaultIncomeSources()
	}
	return models.CategoryNames(models.DefaultCategories())
}
