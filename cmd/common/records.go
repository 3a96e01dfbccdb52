package common

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/entry"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/export"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/validation"
)

// RecordFlags holds the values of the add and edit flags.
type RecordFlags struct {
	Amount      string
	Description string
	Label       string
	Date        string
}

// NewRecordCommand builds the list, add, edit, delete and export
// subcommands for kind.
func NewRecordCommand(kind models.Kind, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: fmt.Sprintf(`Manage %s records stored on the ExpenseWise backend.
Every change is validated locally before it is sent.`, kind),
	}
	cmd.AddCommand(
		newListCommand(kind),
		newAddCommand(kind),
		newEditCommand(kind),
		newDeleteCommand(kind),
		newExportCommand(kind),
	)
	return cmd
}

func newListCommand(kind models.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s records", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			list := c.NewListController(kind)
			if err := list.Activate(Context(cmd)); err != nil {
				return Fail(err, fmt.Sprintf("failed to load %s records", kind))
			}
			return c.GetRenderer().Records(cmd.OutOrStdout(), kind, list.Items())
		},
	}
}

func addRecordFlags(cmd *cobra.Command, kind models.Kind, flags *RecordFlags) {
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&flags.Label, kind.LabelField(), "c", "", fmt.Sprintf("The %s %s", kind, kind.LabelField()))
	cmd.Flags().StringVarP(&flags.Date, "date", "t", "", "Date (YYYY-MM-DD, default today)")
}

func newAddCommand(kind models.Kind) *cobra.Command {
	flags := &RecordFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Record a new %s", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			ctx := Context(cmd)

			known, fallback := c.KnownLabels(ctx, kind)
			if fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "Using default categories.")
			}

			ctrl := c.NewEntryController(entry.NewCreateForm(kind, time.Now()), known)
			ctrl.SetAmount(flags.Amount)
			if flags.Date != "" {
				ctrl.SetDate(flags.Date)
			}
			if cmd.Flags().Changed(kind.LabelField()) {
				ctrl.SetLabel(flags.Label)
			}
			if res, applied := ctrl.SetDescription(ctx, flags.Description); applied {
				fmt.Fprintf(cmd.ErrOrStderr(), "Suggested %s: %s (%s)\n", kind.LabelField(), res.Label, res.Source)
			}
			return submit(cmd, ctrl, "saved")
		},
	}
	addRecordFlags(cmd, kind, flags)
	return cmd
}

func newEditCommand(kind models.Kind) *cobra.Command {
	flags := &RecordFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Change an existing %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			ctx := Context(cmd)
			id := models.ID(args[0])

			list := c.NewListController(kind)
			if err := list.Activate(ctx); err != nil {
				return Fail(err, fmt.Sprintf("failed to load %s records", kind))
			}
			rec, ok := list.Find(id)
			if !ok {
				return Fail(entry.ErrNotInList{Kind: kind, ID: id}, fmt.Sprintf("no %s with id %s", kind, id))
			}

			known, _ := c.KnownLabels(ctx, kind)
			ctrl := c.NewEntryController(entry.NewEditForm(rec), known)
			if cmd.Flags().Changed("amount") {
				ctrl.SetAmount(flags.Amount)
			}
			if cmd.Flags().Changed("date") {
				ctrl.SetDate(flags.Date)
			}
			if cmd.Flags().Changed(kind.LabelField()) {
				ctrl.SetLabel(flags.Label)
			} else {
				// Keep the stored label unless asked otherwise.
				ctrl.SetLabel(rec.Label)
			}
			if cmd.Flags().Changed("description") {
				ctrl.SetDescription(ctx, flags.Description)
			}
			return submit(cmd, ctrl, "updated")
		},
	}
	addRecordFlags(cmd, kind, flags)
	return cmd
}

func submit(cmd *cobra.Command, ctrl *entry.Controller, verb string) error {
	if err := ctrl.Submit(Context(cmd)); err != nil {
		root.Log.WithError(err).Debug("Submit rejected",
			logging.Field{Key: logging.FieldState, Value: ctrl.State().String()})
		return Fail(err, ctrl.Message())
	}
	saved, _ := ctrl.Saved()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (id %s): %s %s on %s\n",
		saved.Kind.Title(), verb, saved.ID, saved.Amount, saved.LabelOrDefault(), saved.Date)
	return nil
}

func newDeleteCommand(kind models.Kind) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s after confirmation", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			ctx := Context(cmd)

			list := c.NewListController(kind)
			if err := list.Activate(ctx); err != nil {
				return Fail(err, fmt.Sprintf("failed to load %s records", kind))
			}

			confirm := func(rec models.TransactionRecord) bool {
				if yes {
					return true
				}
				return Confirm(cmd, fmt.Sprintf("Delete %s %q (%s)?", kind, truncate(rec.Description, 40), rec.Amount))
			}
			deleted, err := list.Delete(ctx, models.ID(args[0]), confirm)
			switch {
			case err != nil && deleted:
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted.\n", kind.Title(), args[0])
				return Fail(err, "deleted, but the list could not be refreshed")
			case err != nil:
				return Fail(err, fmt.Sprintf("failed to delete %s %s", kind, args[0]))
			case !deleted:
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted.\n", kind.Title(), args[0])
			return c.GetRenderer().Records(cmd.OutOrStdout(), kind, list.Items())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newExportCommand(kind models.Kind) *cobra.Command {
	var (
		file      string
		delimiter string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Export %s records as CSV", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.Container()
			if err != nil {
				return err
			}
			if utf8.RuneCountInString(delimiter) != 1 {
				return fmt.Errorf("delimiter must be a single character, got: %q", delimiter)
			}
			d, _ := utf8.DecodeRuneInString(delimiter)
			if file != "" {
				if err := validation.ExportPath(file); err != nil {
					return err
				}
			}

			list := c.NewListController(kind)
			if err := list.Activate(Context(cmd)); err != nil {
				return Fail(err, fmt.Sprintf("failed to load %s records", kind))
			}

			writer := c.GetExporter()
			if d != writer.Delimiter {
				writer = export.NewWriter(d, c.GetLogger())
			}
			if file == "" {
				return writer.Write(cmd.OutOrStdout(), list.Items())
			}
			if err := writer.WriteFile(file, list.Items()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s records to %s\n", len(list.Items()), kind, file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of standard output")
	cmd.Flags().StringVar(&delimiter, "delimiter", string(export.DefaultDelimiter), "Field delimiter")
	return cmd
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
