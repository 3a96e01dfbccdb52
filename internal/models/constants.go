package models

// CategoryUncategorized labels expenses whose category is missing or blank.
const CategoryUncategorized = "Uncategorized"

// Category names used when the backend returns none.
const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills & Utilities"
	CategoryHealthcare    = "Healthcare"
	CategoryOther         = "Other"
)

// Income sources offered by the income forms.
const (
	SourceSalary     = "Salary"
	SourceFreelance  = "Freelance"
	SourceBusiness   = "Business"
	SourceInvestment = "Investment"
	SourceGift       = "Gift"
	SourceOther      = "Other"
)

// File permissions for locally stored credentials.
const (
	PermissionCredentialFile = 0600
	PermissionDirectory      = 0750
	PermissionExportFile     = 0644
)
