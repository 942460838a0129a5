package nowpayments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/apperrors"
	"github.com/okwaro/paygate/internal/logger"
)

const (
	requestTimeout = 5 * time.Second
	apiKeyHeader   = "x-api-key"

	// Fiat currency the processor reports minimums against
	fiatEquivalent = "usd"

	// Estimates are padded with the processor fee before asking for a quote
	processFeePercent = 0.5
)

// CreatePaymentRequest is the '/v1/payment' request body
type CreatePaymentRequest struct {
	PriceAmount      decimal.Decimal `json:"price_amount"`
	PriceCurrency    string          `json:"price_currency"`
	PayCurrency      string          `json:"pay_currency"`
	IPNCallbackURL   string          `json:"ipn_callback_url"`
	OrderID          string          `json:"order_id"`
	OrderDescription string          `json:"order_description"`
	IsFixedRate      bool            `json:"is_fixed_rate"`
	IsFeePaidByUser  bool            `json:"is_fee_paid_by_user"`
}

// Payment is the processor-assigned payment state
type Payment struct {
	PaymentID      string          `json:"payment_id"`
	PayAddress     string          `json:"pay_address"`
	PayAmount      decimal.Decimal `json:"pay_amount"`
	Network        string          `json:"network"`
	OrderID        string          `json:"order_id"`
	PaymentStatus  string          `json:"payment_status"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// Client talks to the NOWPayments API
type Client struct {
	addr   string
	apiKey string

	client *http.Client
	logger logger.Logger
}

func NewClient(addr string, apiKey string, logger logger.Logger) *Client {
	return &Client{
		addr:   addr,
		apiKey: apiKey,
		client: &http.Client{},
		logger: logger,
	}
}

// MinimumAmount returns the minimum payable amount for the currency pair
// under fixed-rate, fee-paid-by-user conditions.
func (c *Client) MinimumAmount(ctx context.Context, currencyFrom string, currencyTo string) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("currency_from", currencyFrom)
	query.Set("currency_to", currencyTo)
	query.Set("fiat_equivalent", fiatEquivalent)
	query.Set("is_fixed_rate", "False")
	query.Set("is_fee_paid_by_user", "True")

	var body struct {
		MinAmount decimal.Decimal `json:"min_amount"`
	}
	if err := c.get(ctx, "/v1/min-amount", query, &body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrMinimumUnavailable, err)
	}
	if !body.MinAmount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: response carries no minimum", apperrors.ErrMinimumUnavailable)
	}

	c.logger.Debug("Minimum payment amount", "currency_from", currencyFrom, "currency_to", currencyTo, "min_amount", body.MinAmount)
	return body.MinAmount, nil
}

// EstimatePrice quotes how much crypto a fiat amount buys, with the
// processor fee included in the estimated amount.
func (c *Client) EstimatePrice(ctx context.Context, amount decimal.Decimal, currencyFrom string, currencyTo string) (decimal.Decimal, error) {
	amountWithFee := amount.Add(amount.Mul(decimal.NewFromFloat(processFeePercent)).Div(decimal.NewFromInt(100)))

	query := url.Values{}
	query.Set("amount", amountWithFee.String())
	query.Set("currency_from", currencyFrom)
	query.Set("currency_to", currencyTo)

	var body struct {
		EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	}
	if err := c.get(ctx, "/v1/estimate", query, &body); err != nil {
		return decimal.Zero, err
	}
	if !body.EstimatedAmount.IsPositive() {
		return decimal.Zero, fmt.Errorf("failed to estimate %s amount", currencyTo)
	}

	return body.EstimatedAmount, nil
}

// CreatePayment submits a payment-creation request.
// A processor-side rejection (explicit 'status: false' body or a client
// error status) maps to apperrors.ErrPaymentBelowMinimum; a response
// without a payment id or pay address maps to apperrors.ErrPaymentCreateFailed.
func (c *Client) CreatePayment(ctx context.Context, payment CreatePaymentRequest) (Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	data, err := json.Marshal(payment)
	if err != nil {
		return Payment{}, fmt.Errorf("failed to encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/v1/payment", bytes.NewReader(data))
	if err != nil {
		return Payment{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Payment{}, fmt.Errorf("failed to send payment request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		c.logger.Warn("Processor rejected payment", "status_code", resp.StatusCode, "order_id", payment.OrderID)
		return Payment{}, apperrors.ErrPaymentBelowMinimum
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Payment{}, fmt.Errorf("%w: unexpected status code %d", apperrors.ErrPaymentCreateFailed, resp.StatusCode)
	}

	var body struct {
		Payment
		Status *bool `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Payment{}, fmt.Errorf("%w: failed to decode response: %w", apperrors.ErrPaymentCreateFailed, err)
	}

	if body.Status != nil && !*body.Status {
		return Payment{}, apperrors.ErrPaymentBelowMinimum
	}
	if body.PaymentID == "" || body.PayAddress == "" {
		return Payment{}, apperrors.ErrPaymentCreateFailed
	}

	c.logger.Debug("Payment created", "payment_id", body.PaymentID, "order_id", body.OrderID, "status", body.PaymentStatus)
	return body.Payment, nil
}

// get runs an authenticated GET request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Processor request failed", "path", path, "status_code", resp.StatusCode)
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
