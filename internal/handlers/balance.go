package handlers

import (
	"errors"
	"net/http"

	"github.com/okwaro/paygate/internal/apperrors"
	"github.com/okwaro/paygate/internal/handlers/render"
	"github.com/okwaro/paygate/internal/logger"
)

func handleUserBalance(ledger ledgerReader, l logger.Logger) http.Handler {
	type response struct {
		UserID      string   `json:"userId"`
		Balance     float64  `json:"balance"`
		Deposits    []string `json:"deposits"`
		Withdrawals []string `json:"withdrawals"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userID")

		user, err := ledger.GetUser(r.Context(), userID)

		switch {
		case err == nil:
			balance, _ := user.Balance.Float64()
			render.JSON(w, response{
				UserID:      user.ID,
				Balance:     balance,
				Deposits:    user.Deposits,
				Withdrawals: user.Withdrawals,
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get user balance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
