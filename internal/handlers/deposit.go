package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/apperrors"
	"github.com/okwaro/paygate/internal/handlers/render"
	"github.com/okwaro/paygate/internal/logger"
)

func handleDeposit(service depositService, l logger.Logger) http.Handler {
	type request struct {
		UserID string          `json:"userId" validate:"required"`
		Amount decimal.Decimal `json:"amount"`
	}

	type response struct {
		TransactionID  string  `json:"transactionId"`
		PayAmount      float64 `json:"payAmount"`
		DepositAddress string  `json:"depositAddress"`
		Crypto         string  `json:"crypto"`
		Message        string  `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		if !data.Amount.IsPositive() {
			render.ServiceError(w, "Invalid userId or amount", http.StatusBadRequest)
			return
		}

		res, err := service.Deposit(r.Context(), data.UserID, data.Amount)

		switch {
		case err == nil:
			payAmount, _ := res.PayAmount.Float64()
			render.JSON(w, response{
				TransactionID:  res.TransactionID,
				PayAmount:      payAmount,
				DepositAddress: res.DepositAddress,
				Crypto:         res.PayCurrency,
				Message:        fmt.Sprintf("Send %s %s to %s", res.PayAmount, strings.ToUpper(res.PayCurrency), res.DepositAddress),
			})
		case errors.Is(err, apperrors.ErrPaymentBelowMinimum):
			message := fmt.Sprintf("Amount is less than the minimum transferable limit of %s %s", res.Minimum, strings.ToUpper(res.PayCurrency))
			render.ServiceError(w, message, http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrRateUnavailable):
			l.Error("Deposit failed: exchange rate unavailable", "error", err)
			render.ServiceError(w, "Exchange rate service unavailable", http.StatusBadGateway)
		default:
			l.Error("Failed to process deposit", "error", err)
			render.ServiceError(w, "Failed to process deposit", http.StatusInternalServerError)
		}
	})
}
