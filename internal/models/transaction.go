package models

import "time"

// Direction tells whether money entered or left the account
type Direction string

const (
	DirectionCredit Direction = "Credit"
	DirectionDebit  Direction = "Debit"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AccountID    string    `json:"account_id"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Timestamp    time.Time `json:"timestamp"`
	Category     string    `json:"category"`
	MerchantName string    `json:"merchant_name"`
	PaymentMode  string    `json:"payment_mode"`
	Direction    Direction `json:"direction"`
}

// IsDebit reports whether the transaction counts as expenditure
func (t Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}
