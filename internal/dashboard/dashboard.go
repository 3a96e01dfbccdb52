// Package dashboard loads expenses and income together and summarizes them.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/aggregate"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// Lister fetches the records of one kind.
type Lister interface {
	List(ctx context.Context, kind models.Kind) ([]models.TransactionRecord, error)
}

// Snapshot is one consistent view of the dashboard.
type Snapshot struct {
	Expenses  []models.TransactionRecord
	Income    []models.TransactionRecord
	Summary   aggregate.Summary
	FetchedAt time.Time
}

// Loader fetches both lists in parallel and only publishes a snapshot when
// both succeeded.
type Loader struct {
	lister Lister
	logger logging.Logger
	now    func() time.Time

	mu   sync.RWMutex
	last *Snapshot
}

// NewLoader creates a Loader.
func NewLoader(lister Lister, logger logging.Logger) *Loader {
	return &Loader{lister: lister, logger: logging.OrNop(logger), now: time.Now}
}

// Load fetches expenses and income concurrently. If either fetch fails the
// error is returned and the previous snapshot stays current.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var expenses, income []models.TransactionRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = l.lister.List(gctx, models.KindExpense)
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		income, err = l.lister.List(gctx, models.KindIncome)
		if err != nil {
			return fmt.Errorf("fetch income: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		l.logger.WithError(err).Warn("Dashboard refresh failed")
		return Snapshot{}, err
	}

	snap := Snapshot{
		Expenses:  expenses,
		Income:    income,
		Summary:   aggregate.Summarize(expenses, income),
		FetchedAt: l.now(),
	}
	if snap.Summary.Malformed > 0 {
		l.logger.Warn("Records with missing or invalid amounts counted as zero",
			logging.Field{Key: logging.FieldMalformed, Value: snap.Summary.Malformed})
	}

	l.mu.Lock()
	l.last = &snap
	l.mu.Unlock()

	l.logger.Debug("Dashboard refreshed",
		logging.Field{Key: logging.FieldCount, Value: len(expenses) + len(income)})
	return snap, nil
}

// Last returns the most recent successful snapshot.
func (l *Loader) Last() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return Snapshot{}, false
	}
	return *l.last, true
}

// Recent returns the n most recent records of both kinds, newest first.
// Same-day records keep expenses before income.
func (s Snapshot) Recent(n int) []models.TransactionRecord {
	all := make([]models.TransactionRecord, 0, len(s.Expenses)+len(s.Income))
	all = append(all, s.Expenses...)
	all = append(all, s.Income...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
