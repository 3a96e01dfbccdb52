package entry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// RecordSource lists and deletes records of one kind.
type RecordSource interface {
	List(ctx context.Context, kind models.Kind) ([]models.TransactionRecord, error)
	Delete(ctx context.Context, kind models.Kind, id models.ID) error
}

// ConfirmFunc asks the user to confirm deleting rec.
type ConfirmFunc func(rec models.TransactionRecord) bool

// ErrNotInList is returned when deleting an id that is not displayed.
type ErrNotInList struct {
	Kind models.Kind
	ID   models.ID
}

func (e ErrNotInList) Error() string {
	return fmt.Sprintf("no %s with id %s", e.Kind, e.ID)
}

// ListController holds the records displayed for one kind. The list only
// changes when a fetch succeeds; failed fetches and deletes leave it as is.
type ListController struct {
	kind   models.Kind
	source RecordSource
	logger logging.Logger

	mu        sync.RWMutex
	items     []models.TransactionRecord
	fetchedAt time.Time
}

// NewListController creates an empty list for kind.
func NewListController(kind models.Kind, source RecordSource, logger logging.Logger) *ListController {
	return &ListController{kind: kind, source: source, logger: logging.OrNop(logger)}
}

// Kind returns the kind of records listed.
func (l *ListController) Kind() models.Kind { return l.kind }

// Activate is the hook the host calls whenever the list becomes visible.
func (l *ListController) Activate(ctx context.Context) error {
	return l.Refresh(ctx)
}

// Refresh refetches the list. On error the current items are kept.
func (l *ListController) Refresh(ctx context.Context) error {
	items, err := l.source.List(ctx, l.kind)
	if err != nil {
		l.logger.WithError(err).Warn("Failed to refresh list",
			logging.Field{Key: logging.FieldKind, Value: l.kind.String()})
		return err
	}

	l.mu.Lock()
	l.items = items
	l.fetchedAt = time.Now()
	l.mu.Unlock()

	l.logger.Debug("List refreshed",
		logging.Field{Key: logging.FieldKind, Value: l.kind.String()},
		logging.Field{Key: logging.FieldCount, Value: len(items)})
	return nil
}

// Items returns a copy of the displayed records.
func (l *ListController) Items() []models.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.TransactionRecord, len(l.items))
	copy(out, l.items)
	return out
}

// FetchedAt is the time of the last successful fetch.
func (l *ListController) FetchedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetchedAt
}

// Find returns the displayed record with id.
func (l *ListController) Find(id models.ID) (models.TransactionRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, rec := range l.items {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.TransactionRecord{}, false
}

// Delete asks confirm (when non-nil), deletes the record on the backend
// and refetches. It reports whether the backend deleted the record. The
// displayed list is never edited locally: it changes only through the
// refetch.
func (l *ListController) Delete(ctx context.Context, id models.ID, confirm ConfirmFunc) (bool, error) {
	rec, ok := l.Find(id)
	if !ok {
		return false, ErrNotInList{Kind: l.kind, ID: id}
	}
	if confirm != nil && !confirm(rec) {
		return false, nil
	}

	log := l.logger.WithFields(
		logging.Field{Key: logging.FieldKind, Value: l.kind.String()},
		logging.Field{Key: logging.FieldRecordID, Value: id.String()},
	)
	if err := l.source.Delete(ctx, l.kind, id); err != nil {
		log.WithError(err).Warn("Delete failed")
		return false, err
	}
	log.Debug("Record deleted")

	if err := l.Refresh(ctx); err != nil {
		return true, fmt.Errorf("refresh after delete: %w", err)
	}
	return true, nil
}
