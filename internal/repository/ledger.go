package repository

import (
	"context"

	"github.com/okwaro/paygate/internal/models"
)

// Ledger repository interface
type Ledger interface {
	// Record the transaction and apply its amount to the owning user's balance.
	// The user is created with a zero balance if it doesn't exist yet.
	// Deposits increase the balance, withdrawals decrease it; transactions of
	// any other type are stored but never touch the balance.
	// Recording an id twice overwrites the stored transaction and applies the
	// balance delta again.
	// Returns the user state after the transaction was applied.
	RecordTransaction(ctx context.Context, tx models.Transaction) (models.User, error)

	// Get user by id
	// If user not found must return apperrors.ErrUserNotFound
	GetUser(ctx context.Context, userID string) (models.User, error)

	// Get transaction by id
	// If transaction not found must return apperrors.ErrTransactionNotFound
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
}
