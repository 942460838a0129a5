package models

import (
	"github.com/shopspring/decimal"
)

// User is created lazily when its first transaction is recorded.
// Balance is the signed running sum of recorded deposits and withdrawals.
type User struct {
	ID          string
	Balance     decimal.Decimal
	Deposits    []string
	Withdrawals []string
}
