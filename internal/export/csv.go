// Package export writes fetched records to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// DefaultDelimiter separates CSV fields.
const DefaultDelimiter = ','

// Row is one CSV line.
type Row struct {
	ID          string `csv:"ID"`
	Kind        string `csv:"Kind"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Label       string `csv:"Label"`
	Amount      string `csv:"Amount"`
}

// RowOf converts a record to its CSV row. Amounts always carry two
// decimals; a missing amount is written as 0.00.
func RowOf(rec models.TransactionRecord) Row {
	return Row{
		ID:          rec.ID.String(),
		Kind:        rec.Kind.String(),
		Date:        rec.Date.String(),
		Description: rec.Description,
		Label:       rec.LabelOrDefault(),
		Amount:      rec.Amount.OrZero().StringFixed(2),
	}
}

// Writer writes records as CSV.
type Writer struct {
	Delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer. A zero delimiter means a comma.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Writer{Delimiter: delimiter, logger: logging.OrNop(logger)}
}

// WriteCSV writes records to out with the default delimiter.
func WriteCSV(out io.Writer, records []models.TransactionRecord) error {
	return NewWriter(DefaultDelimiter, nil).Write(out, records)
}

// Write writes a header line followed by one line per record.
func (w *Writer) Write(out io.Writer, records []models.TransactionRecord) error {
	if records == nil {
		return errors.New("cannot write nil records to CSV")
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RowOf(rec))
	}

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		w.logger.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating parent directories.
func (w *Writer) WriteFile(path string, records []models.TransactionRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionExportFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := w.Write(file, records); err != nil {
		return err
	}

	w.logger.Info("Exported records",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}
