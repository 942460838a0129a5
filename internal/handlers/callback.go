package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/okwaro/paygate/internal/handlers/render"
	"github.com/okwaro/paygate/internal/logger"
)

// handleCallback accepts IPN status callbacks from the payment processor.
// The payload is logged and acknowledged unconditionally; no signature
// verification and no transaction-state update happens here.
// TODO: apply the callback's payment_status to the stored transaction once
// the IPN signature check is in place.
func handleCallback(l logger.Logger) http.Handler {
	type response struct {
		Success bool `json:"success"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			l.Warn("Failed to decode callback payload", "error", err)
		} else {
			l.Info("Payment callback received", "payload", payload)
		}

		render.JSON(w, response{Success: true})
	})
}
