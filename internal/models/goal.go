package models

// Goal is a savings goal. Progress is computed by the backend.
type Goal struct {
	ID                 ID     `json:"id"`
	Name               string `json:"name"`
	StartDate          Date   `json:"start_date"`
	EndDate            Date   `json:"end_date"`
	AmountToSave       Amount `json:"amount_to_save"`
	CurrentSavedAmount Amount `json:"current_saved_amount"`
	Progress           Amount `json:"progress"`
}
