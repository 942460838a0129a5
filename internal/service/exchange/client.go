package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/logger"
)

const requestTimeout = 5 * time.Second

// USD is the quote currency every conversion resolves to
const quoteCurrency = "USD"

// latestRates is the exchangerate-api.com v6 '/latest/{BASE}' response
type latestRates struct {
	Result          string                     `json:"result"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Client converts local-currency amounts to USD using the
// exchangerate-api.com latest-rates endpoint.
type Client struct {
	addr         string
	apiKey       string
	baseCurrency string

	client *http.Client
	logger logger.Logger
}

// NewClient creates a client for the given API base address (no trailing
// slash), API key and base currency code (e.g. "KES").
func NewClient(addr string, apiKey string, baseCurrency string, logger logger.Logger) *Client {
	return &Client{
		addr:         addr,
		apiKey:       apiKey,
		baseCurrency: strings.ToUpper(baseCurrency),
		client:       &http.Client{},
		logger:       logger,
	}
}

// ConvertToUSD returns the USD equivalent of amount in the base currency.
// Unlike a lookup that swallows transport errors, a failed or malformed
// rates response is always surfaced to the caller.
func (c *Client) ConvertToUSD(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/latest/%s", c.addr, c.apiKey, c.baseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Exchange rate lookup failed", "status_code", resp.StatusCode, "base", c.baseCurrency)
		return decimal.Zero, fmt.Errorf("exchange rate service returned status %d", resp.StatusCode)
	}

	var rates latestRates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rates response: %w", err)
	}

	rate, ok := rates.ConversionRates[quoteCurrency]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("no usable %s rate for %s", quoteCurrency, c.baseCurrency)
	}

	converted := amount.Mul(rate)
	c.logger.Debug("Converted amount", "base", c.baseCurrency, "amount", amount, "rate", rate, "usd", converted)

	return converted, nil
}
