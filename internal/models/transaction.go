package models

import (
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// Transaction is a single ledger entry. The ID is assigned by the payment
// processor, so it doubles as the processor payment id.
type Transaction struct {
	ID     string
	UserID string
	Type   string

	// Requested amount in the local (base) currency
	Amount decimal.Decimal

	// Converted amount the payment was priced with
	AmountUSD decimal.Decimal

	// Processor-assigned payment details
	PayAmount      decimal.Decimal
	PayCurrency    string
	Network        string
	DepositAddress string
	OrderID        string
	Status         string
	AmountReceived decimal.Decimal

	// Processor timestamps, stored as received
	CreatedAt string
	UpdatedAt string
}
