package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/handlers/render"
	"github.com/okwaro/paygate/internal/logger"
	"github.com/okwaro/paygate/internal/service/deposit"
)

// handleEstimate quotes how much crypto a USD amount buys, fee included
func handleEstimate(estimator priceEstimator, l logger.Logger) http.Handler {
	type response struct {
		EstimatedAmount float64 `json:"estimatedAmount"`
		Crypto          string  `json:"crypto"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
		if err != nil || !amount.IsPositive() {
			render.ServiceError(w, "Invalid amount", http.StatusBadRequest)
			return
		}

		estimated, err := estimator.EstimatePrice(r.Context(), amount, deposit.FiatCurrency, deposit.PayCurrency)

		switch err {
		case nil:
			estimatedAmount, _ := estimated.Float64()
			render.JSON(w, response{
				EstimatedAmount: estimatedAmount,
				Crypto:          deposit.PayCurrency,
			})
		default:
			l.Error("Failed to estimate price", "error", err)
			render.ServiceError(w, "Estimate service unavailable", http.StatusBadGateway)
		}
	})
}
