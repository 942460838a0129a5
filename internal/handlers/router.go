package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/handlers/middleware"
	"github.com/okwaro/paygate/internal/logger"
	"github.com/okwaro/paygate/internal/models"
	"github.com/okwaro/paygate/internal/service/deposit"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	depositService depositService,
	estimator priceEstimator,
	ledger ledgerReader,
	logger logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /deposit", handleDeposit(depositService, logger))
	mux.Handle("POST /callback", handleCallback(logger))

	mux.Handle("GET /api/estimate", handleEstimate(estimator, logger))
	mux.Handle("GET /api/users/{userID}/balance", handleUserBalance(ledger, logger))

	handler := chain(mux,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type depositService interface {
	// Create a crypto payment for the amount in the base currency
	// Has to return apperrors.ErrPaymentBelowMinimum when the processor
	// rejects the amount and apperrors.ErrRateUnavailable when the amount
	// can't be priced in USD
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (deposit.Result, error)
}

type priceEstimator interface {
	EstimatePrice(ctx context.Context, amount decimal.Decimal, currencyFrom string, currencyTo string) (decimal.Decimal, error)
}

type ledgerReader interface {
	// Has to return apperrors.ErrUserNotFound for unknown users
	GetUser(ctx context.Context, userID string) (models.User, error)
}
