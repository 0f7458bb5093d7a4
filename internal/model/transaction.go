package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a bank transaction reported by the payment gateway's
// webhook, attached to the order it settles.
type Transaction struct {
	ID                   string    `json:"id" db:"id"`
	OrderID              uuid.UUID `json:"order" db:"order_id"`
	OrderCode            int64     `json:"orderCode" db:"order_code"`
	Reference            string    `json:"reference" db:"reference"`
	AccountNumber        string    `json:"accountNumber" db:"account_number"`
	Amount               float64   `json:"amount" db:"amount"`
	CounterAccountBankID string    `json:"counterAccountBankId" db:"counter_account_bank_id"`
	CounterAccountName   string    `json:"counterAccountName" db:"counter_account_name"`
	CounterAccountNumber string    `json:"counterAccountNumber" db:"counter_account_number"`
	Description          string    `json:"description" db:"description"`
	TransactionDateTime  time.Time `json:"transactionDateTime" db:"transaction_datetime"`
}
