package models

import (
	"encoding/json"
	"strings"
)

// TransactionRecord is an expense or an income entry. Label holds the
// expense category or the income source depending on Kind.
type TransactionRecord struct {
	Kind        Kind
	ID          ID
	Amount      Amount
	Description string
	Label       string
	Date        Date
}

// LabelOrDefault returns the trimmed label, or "Uncategorized" when blank.
func (r TransactionRecord) LabelOrDefault() string {
	if l := strings.TrimSpace(r.Label); l != "" {
		return l
	}
	return CategoryUncategorized
}

// SameContent reports whether two records carry the same user-visible data,
// ignoring the identifier.
func (r TransactionRecord) SameContent(other TransactionRecord) bool {
	return r.Kind == other.Kind &&
		r.Amount.Equal(other.Amount) &&
		r.Description == other.Description &&
		r.Label == other.Label &&
		r.Date.Equal(other.Date)
}

type wireRecord struct {
	ID          ID     `json:"id,omitempty"`
	Kind        Kind   `json:"kind,omitempty"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Source      string `json:"source,omitempty"`
	Date        Date   `json:"date"`
}

// MarshalJSON writes the record in the backend's shape, using "category" or
// "source" for the label.
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		ID:          r.ID,
		Kind:        r.Kind,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.Kind == KindIncome {
		w.Source = r.Label
	} else {
		w.Category = r.Label
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads a backend record. Kind is taken from the payload when
// present; callers that know the collection set it afterwards.
func (r *TransactionRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = TransactionRecord{
		Kind:        w.Kind,
		ID:          w.ID,
		Amount:      w.Amount,
		Description: w.Description,
		Date:        w.Date,
	}
	switch {
	case w.Kind == KindIncome && w.Source != "":
		r.Label = w.Source
	case w.Category != "":
		r.Label = w.Category
	default:
		r.Label = w.Source
	}
	return nil
}

// RecordBody is the create/update request payload.
type RecordBody struct {
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Source      string `json:"source,omitempty"`
	Date        Date   `json:"date"`
}

// Body returns the request payload for creating or updating r.
func (r TransactionRecord) Body() RecordBody {
	b := RecordBody{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.Kind == KindIncome {
		b.Source = r.Label
	} else {
		b.Category = r.Label
	}
	return b
}

// WithKind stamps kind on every record and returns the slice.
func WithKind(records []TransactionRecord, kind Kind) []TransactionRecord {
	for i := range records {
		records[i].Kind = kind
	}
	return records
}
