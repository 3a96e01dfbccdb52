package entry

import (
	"context"
	"strconv"
	"sync"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/suggest"
)

// fakeGateway records calls and serves an in-memory list.
type fakeGateway struct {
	mu sync.Mutex

	records []models.TransactionRecord
	nextID  int

	createCalls, updateCalls, listCalls, deleteCalls int
	feedback                                         [][2]string

	writeErr  error
	listErr   error
	deleteErr error

	// block, when set, is waited on inside Create/Update.
	block chan struct{}
	// entered is signalled when a blocked write starts.
	entered chan struct{}
}

func (g *fakeGateway) Create(ctx context.Context, rec models.TransactionRecord) (models.TransactionRecord, error) {
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.writeErr != nil {
		return models.TransactionRecord{}, g.writeErr
	}
	g.nextID++
	rec.ID = models.ID(strconv.Itoa(g.nextID))
	g.records = append(g.records, rec)
	return rec, nil
}

func (g *fakeGateway) Update(ctx context.Context, rec models.TransactionRecord) (models.TransactionRecord, error) {
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalls++
	if g.writeErr != nil {
		return models.TransactionRecord{}, g.writeErr
	}
	for i := range g.records {
		if g.records[i].ID == rec.ID {
			g.records[i] = rec
		}
	}
	return rec, nil
}

func (g *fakeGateway) wait() {
	if g.block == nil {
		return
	}
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	<-g.block
}

func (g *fakeGateway) List(_ context.Context, kind models.Kind) ([]models.TransactionRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	var out []models.TransactionRecord
	for _, r := range g.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

func (g *fakeGateway) Delete(_ context.Context, _ models.Kind, id models.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i, r := range g.records {
		if r.ID == id {
			g.records = append(g.records[:i], g.records[i+1:]...)
			break
		}
	}
	return nil
}

func (g *fakeGateway) UpdateDataset(_ context.Context, description, category string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.feedback = append(g.feedback, [2]string{description, category})
	return nil
}

func (g *fakeGateway) writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls + g.updateCalls
}

// scriptedSuggester answers from a map and can hold answers back.
type scriptedSuggester struct {
	answers map[string]string
	hold    map[string]chan struct{}
	mu      sync.Mutex
	queried []string
}

func (s *scriptedSuggester) ShouldQuery(description string) bool {
	return len([]rune(description)) > suggest.DefaultMinLength
}

func (s *scriptedSuggester) Suggest(_ context.Context, description string) suggest.Result {
	s.mu.Lock()
	s.queried = append(s.queried, description)
	gate := s.hold[description]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	label, ok := s.answers[description]
	return suggest.Result{Label: label, Source: "scripted", OK: ok}
}
