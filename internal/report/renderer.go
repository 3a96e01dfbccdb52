// Package report renders dashboards and record lists for the terminal
// (text) or for other programs (json, yaml).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/aggregate"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/currencyutils"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/dashboard"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml (and yml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Balance status labels.
const (
	StatusSurplus = "Surplus"
	StatusDeficit = "Deficit"
)

// Renderer writes views in one format.
type Renderer struct {
	format Format
	symbol string
	logger logging.Logger
}

// NewRenderer creates a Renderer using the default currency symbol.
func NewRenderer(format Format, logger logging.Logger) *Renderer {
	return &Renderer{format: format, symbol: currencyutils.DefaultSymbol, logger: logging.OrNop(logger)}
}

// Format returns the renderer's format.
func (r *Renderer) Format() Format { return r.format }

// RecordView is the display form of a record.
type RecordView struct {
	ID          string `json:"id" yaml:"id"`
	Kind        string `json:"kind" yaml:"kind"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Label       string `json:"label" yaml:"label"`
	Amount      string `json:"amount" yaml:"amount"`
}

// CategoryView is one line of the category breakdown.
type CategoryView struct {
	Label  string `json:"label" yaml:"label"`
	Amount string `json:"amount" yaml:"amount"`
	Share  string `json:"share" yaml:"share"`
	Count  int    `json:"count" yaml:"count"`
}

// DashboardView is the display form of a dashboard snapshot.
type DashboardView struct {
	TotalIncome  string         `json:"total_income" yaml:"total_income"`
	TotalExpense string         `json:"total_expense" yaml:"total_expense"`
	Balance      string         `json:"balance" yaml:"balance"`
	Status       string         `json:"status" yaml:"status"`
	Categories   []CategoryView `json:"categories" yaml:"categories"`
	Recent       []RecordView   `json:"recent" yaml:"recent"`
	Malformed    int            `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	FetchedAt    string         `json:"fetched_at" yaml:"fetched_at"`
}

// NewDashboardView builds the view for snap with up to recent records.
func NewDashboardView(snap dashboard.Snapshot, recent int) DashboardView {
	s := snap.Summary
	v := DashboardView{
		TotalIncome:  amountString(s.TotalIncome),
		TotalExpense: amountString(s.TotalExpense),
		Balance:      amountString(s.Balance),
		Status:       StatusSurplus,
		Categories:   categoryViews(s),
		Recent:       recordViews(snap.Recent(recent)),
		Malformed:    s.Malformed,
	}
	if s.Deficit() {
		v.Status = StatusDeficit
	}
	if !snap.FetchedAt.IsZero() {
		v.FetchedAt = snap.FetchedAt.Format(time.RFC3339)
	}
	return v
}

func categoryViews(s aggregate.Summary) []CategoryView {
	views := make([]CategoryView, 0, len(s.Categories))
	for _, c := range s.Categories {
		views = append(views, CategoryView{
			Label:  c.Label,
			Amount: amountString(c.Amount),
			Share:  c.Share(s.TotalExpense).StringFixed(1),
			Count:  c.Count,
		})
	}
	return views
}

func recordViews(records []models.TransactionRecord) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, RecordView{
			ID:          rec.ID.String(),
			Kind:        rec.Kind.String(),
			Date:        rec.Date.String(),
			Description: rec.Description,
			Label:       rec.LabelOrDefault(),
			Amount:      amountString(rec.Amount.OrZero()),
		})
	}
	return views
}

func amountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Dashboard renders the totals, the category breakdown and the most recent
// records of snap.
func (r *Renderer) Dashboard(w io.Writer, snap dashboard.Snapshot, recent int) error {
	view := NewDashboardView(snap, recent)
	if r.format != FormatText {
		return r.encode(w, view)
	}

	s := snap.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total income:\t%s\n", r.money(s.TotalIncome))
	fmt.Fprintf(tw, "Total expenses:\t%s\n", r.money(s.TotalExpense))
	if s.Deficit() {
		fmt.Fprintf(tw, "%s:\t%s\n", StatusDeficit, r.money(s.Balance.Abs()))
	} else {
		fmt.Fprintf(tw, "Balance:\t%s\n", r.money(s.Balance))
	}
	if s.Malformed > 0 {
		fmt.Fprintf(tw, "Skipped amounts:\t%d\n", s.Malformed)
	}

	if len(view.Categories) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
		for i, c := range s.Categories {
			fmt.Fprintf(tw, "%s\t%s\t%s%%\n", c.Label, r.money(c.Amount), view.Categories[i].Share)
		}
	}

	if len(view.Recent) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RECENT\tDATE\tLABEL\tAMOUNT")
		for _, rec := range snap.Recent(recent) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Description, rec.Date.String(), rec.LabelOrDefault(), r.signed(rec))
		}
	}
	return tw.Flush()
}

// Records renders a list of records of kind.
func (r *Renderer) Records(w io.Writer, kind models.Kind, records []models.TransactionRecord) error {
	if r.format != FormatText {
		return r.encode(w, recordViews(records))
	}
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No %s records found.\n", kind)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tDATE\tDESCRIPTION\t%s\tAMOUNT\n", strings.ToUpper(kind.LabelField()))
	total := decimal.Zero
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.Date.String(), rec.Description, rec.LabelOrDefault(), r.money(rec.Amount.OrZero()))
		total = total.Add(rec.Amount.OrZero())
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", r.money(total))
	return tw.Flush()
}

// Categories renders the category list, noting when defaults are shown.
func (r *Renderer) Categories(w io.Writer, categories []models.Category, fallback bool) error {
	if r.format != FormatText {
		return r.encode(w, struct {
			Categories []models.Category `json:"categories" yaml:"categories"`
			Fallback   bool              `json:"fallback" yaml:"fallback"`
		}{categories, fallback})
	}
	for _, c := range categories {
		if _, err := fmt.Fprintln(w, c.Name); err != nil {
			return err
		}
	}
	if fallback {
		_, err := fmt.Fprintln(w, "(default categories: the server returned none)")
		return err
	}
	return nil
}

// Goals renders savings goals with their progress.
func (r *Renderer) Goals(w io.Writer, goals []models.Goal) error {
	if r.format != FormatText {
		type goalView struct {
			Name     string `json:"name" yaml:"name"`
			Start    string `json:"start_date" yaml:"start_date"`
			End      string `json:"end_date" yaml:"end_date"`
			Target   string `json:"amount_to_save" yaml:"amount_to_save"`
			Saved    string `json:"current_saved_amount" yaml:"current_saved_amount"`
			Progress string `json:"progress" yaml:"progress"`
		}
		views := make([]goalView, 0, len(goals))
		for _, g := range goals {
			views = append(views, goalView{
				Name: g.Name, Start: g.StartDate.String(), End: g.EndDate.String(),
				Target: g.AmountToSave.String(), Saved: g.CurrentSavedAmount.String(), Progress: g.Progress.String(),
			})
		}
		return r.encode(w, views)
	}
	if len(goals) == 0 {
		_, err := fmt.Fprintln(w, "No goals found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GOAL\tPERIOD\tSAVED\tTARGET\tPROGRESS")
	for _, g := range goals {
		fmt.Fprintf(tw, "%s\t%s..%s\t%s\t%s\t%s%%\n", g.Name, g.StartDate.String(), g.EndDate.String(),
			r.money(g.CurrentSavedAmount.OrZero()), r.money(g.AmountToSave.OrZero()), g.Progress.OrZero().StringFixed(1))
	}
	return tw.Flush()
}

func (r *Renderer) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, r.symbol)
}

// signed shows income as positive and expenses as negative amounts.
func (r *Renderer) signed(rec models.TransactionRecord) string {
	amount := rec.Amount.OrZero()
	if rec.Kind == models.KindExpense {
		amount = amount.Neg()
	}
	return r.money(amount)
}

func (r *Renderer) encode(w io.Writer, v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			r.logger.WithError(err).Error("Failed to encode JSON output")
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			r.logger.WithError(err).Error("Failed to encode YAML output")
			return fmt.Errorf("failed to marshal YAML output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", r.format)
	}
}
