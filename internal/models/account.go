package models

// Account is a bank account owned by an individual
type Account struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	BankName string  `json:"bank_name"`
}
