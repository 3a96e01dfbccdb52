package models

// Category is an expense category as served by the backend.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is the fixed set offered when the backend has none.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: CategoryFood},
		{ID: "transport", Name: CategoryTransport},
		{ID: "shopping", Name: CategoryShopping},
		{ID: "entertainment", Name: CategoryEntertainment},
		{ID: "bills", Name: CategoryBills},
		{ID: "health", Name: CategoryHealthcare},
		{ID: "other", Name: CategoryOther},
	}
}

// DefaultIncomeSources lists the sources offered by the income forms.
func DefaultIncomeSources() []string {
	return []string{SourceSalary, SourceFreelance, SourceBusiness, SourceInvestment, SourceGift, SourceOther}
}

// CategoryNames extracts the names, skipping blank ones.
func CategoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
