package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// fakeBackend is an in-memory stand-in for the REST backend.
type fakeBackend struct {
	mu       sync.Mutex
	nextID   int
	records  map[models.Kind][]models.TransactionRecord
	headers  []http.Header
	envelope bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{records: map[models.Kind][]models.TransactionRecord{}}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.headers = append(fb.headers, r.Header.Clone())

	kind := models.KindExpense
	if strings.HasPrefix(r.URL.Path, models.KindIncome.Path()) {
		kind = models.KindIncome
	} else if !strings.HasPrefix(r.URL.Path, models.KindExpense.Path()) {
		http.NotFound(w, r)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, kind.Path()), "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		list := fb.records[kind]
		if list == nil {
			list = []models.TransactionRecord{}
		}
		if fb.envelope {
			writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(list), "results": list})
			return
		}
		writeJSON(w, http.StatusOK, list)
	case r.Method == http.MethodPost && id == "":
		rec, ok := decodeBody(w, r, kind)
		if !ok {
			return
		}
		fb.nextID++
		rec.ID = models.ID(strconv.Itoa(fb.nextID))
		fb.records[kind] = append(fb.records[kind], rec)
		writeJSON(w, http.StatusCreated, rec)
	case r.Method == http.MethodPut && id != "":
		rec, ok := decodeBody(w, r, kind)
		if !ok {
			return
		}
		for i, existing := range fb.records[kind] {
			if existing.ID.String() == id {
				rec.ID = existing.ID
				fb.records[kind][i] = rec
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	case r.Method == http.MethodDelete && id != "":
		for i, existing := range fb.records[kind] {
			if existing.ID.String() == id {
				fb.records[kind] = append(fb.records[kind][:i], fb.records[kind][i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, kind models.Kind) (models.TransactionRecord, bool) {
	var body models.RecordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return models.TransactionRecord{}, false
	}
	rec := models.TransactionRecord{
		Kind:        kind,
		Amount:      body.Amount,
		Description: body.Description,
		Label:       body.Category,
		Date:        body.Date,
	}
	if kind == models.KindIncome {
		rec.Label = body.Source
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// staticToken is a CredentialProvider returning a fixed token.
type staticToken string

func (s staticToken) Token(_ context.Context) (string, error) { return string(s), nil }
