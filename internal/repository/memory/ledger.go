package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/apperrors"
	"github.com/okwaro/paygate/internal/models"
)

// Ledger is an in-memory implementation of repository.Ledger.
// All access is serialized with a mutex, so concurrent deposits for the same
// user can't race on the balance update.
type Ledger struct {
	mu           sync.Mutex
	transactions map[string]models.Transaction
	users        map[string]*models.User
}

func NewLedger() *Ledger {
	return &Ledger{
		transactions: make(map[string]models.Transaction),
		users:        make(map[string]*models.User),
	}
}

func (l *Ledger) RecordTransaction(_ context.Context, tx models.Transaction) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions[tx.ID] = tx

	user, ok := l.users[tx.UserID]
	if !ok {
		user = &models.User{ID: tx.UserID, Balance: decimal.Zero}
		l.users[tx.UserID] = user
	}

	switch tx.Type {
	case models.TransactionTypeDeposit:
		user.Deposits = append(user.Deposits, tx.ID)
		user.Balance = user.Balance.Add(tx.Amount)
	case models.TransactionTypeWithdrawal:
		user.Withdrawals = append(user.Withdrawals, tx.ID)
		user.Balance = user.Balance.Sub(tx.Amount)
	}

	return cloneUser(user), nil
}

func (l *Ledger) GetUser(_ context.Context, userID string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (l *Ledger) GetTransaction(_ context.Context, id string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.transactions[id]
	if !ok {
		return models.Transaction{}, apperrors.ErrTransactionNotFound
	}

	return tx, nil
}

// cloneUser copies the user so callers can't mutate the stored slices
func cloneUser(u *models.User) models.User {
	clone := *u
	clone.Deposits = append([]string(nil), u.Deposits...)
	clone.Withdrawals = append([]string(nil), u.Withdrawals...)
	return clone
}
