package deposit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okwaro/paygate/internal/apperrors"
	"github.com/okwaro/paygate/internal/logger"
	"github.com/okwaro/paygate/internal/models"
	"github.com/okwaro/paygate/internal/repository"
	"github.com/okwaro/paygate/internal/service/nowpayments"
)

// Fixed policy for this service: deposits always settle in one stablecoin
// on one network, priced in USD.
const (
	PayCurrency  = "usdttrc20"
	FiatCurrency = "usd"
)

type rateConverter interface {
	ConvertToUSD(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

type paymentProcessor interface {
	MinimumAmount(ctx context.Context, currencyFrom string, currencyTo string) (decimal.Decimal, error)
	CreatePayment(ctx context.Context, payment nowpayments.CreatePaymentRequest) (nowpayments.Payment, error)
}

type Config struct {
	// URL the processor posts payment-status callbacks to
	CallbackURL string

	// Currency deposit amounts are requested in, e.g. "KES"
	BaseCurrency string
}

// Service fulfills a deposit request: it asks the processor for the pair
// minimum, converts the requested amount to USD, creates the payment and
// records the resulting transaction in the ledger.
type Service struct {
	callbackURL  string
	baseCurrency string

	rates    rateConverter
	payments paymentProcessor
	ledger   repository.Ledger
	logger   logger.Logger
}

// Result carries everything the user needs to complete the payment
type Result struct {
	TransactionID  string
	PayAmount      decimal.Decimal
	PayCurrency    string
	DepositAddress string

	// Last known pair minimum; zero when the lookup failed
	Minimum decimal.Decimal
}

func NewService(c Config, rates rateConverter, payments paymentProcessor, ledger repository.Ledger, logger logger.Logger) *Service {
	return &Service{
		callbackURL:  c.CallbackURL,
		baseCurrency: strings.ToUpper(c.BaseCurrency),
		rates:        rates,
		payments:     payments,
		ledger:       ledger,
		logger:       logger,
	}
}

// Deposit creates a crypto payment for amount in the base currency on behalf
// of userID. Nothing is written to the ledger unless payment creation fully
// succeeds.
func (s *Service) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (Result, error) {
	// A failed minimum lookup doesn't block the deposit: the processor
	// enforces its own minimum when the payment is created.
	minAmount, err := s.payments.MinimumAmount(ctx, PayCurrency, PayCurrency)
	if err != nil {
		s.logger.Warn("Failed to get minimum payment amount", "error", err)
		minAmount = decimal.Zero
	}

	amountUSD, err := s.rates.ConvertToUSD(ctx, amount)
	if err != nil {
		s.logger.Error("Failed to convert amount to USD", "amount", amount, "error", err)
		return Result{PayCurrency: PayCurrency}, fmt.Errorf("converting %s %s: %w", amount, s.baseCurrency, apperrors.ErrRateUnavailable)
	}

	s.logger.Debug("Deposit priced", "user_id", userID, "amount", amount, "amount_usd", amountUSD, "min_amount", minAmount)

	payment, err := s.payments.CreatePayment(ctx, nowpayments.CreatePaymentRequest{
		PriceAmount:      amountUSD,
		PriceCurrency:    FiatCurrency,
		PayCurrency:      PayCurrency,
		IPNCallbackURL:   s.callbackURL,
		OrderID:          newOrderID(),
		OrderDescription: fmt.Sprintf("Deposit of %s %s", amount, s.baseCurrency),
		IsFixedRate:      true,
		IsFeePaidByUser:  true,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentBelowMinimum) {
			return Result{PayCurrency: PayCurrency, Minimum: minAmount}, err
		}
		return Result{PayCurrency: PayCurrency}, err
	}

	user, err := s.ledger.RecordTransaction(ctx, models.Transaction{
		ID:             payment.PaymentID,
		UserID:         userID,
		Type:           models.TransactionTypeDeposit,
		Amount:         amount,
		AmountUSD:      amountUSD,
		PayAmount:      payment.PayAmount,
		PayCurrency:    PayCurrency,
		Network:        payment.Network,
		DepositAddress: payment.PayAddress,
		OrderID:        payment.OrderID,
		Status:         payment.PaymentStatus,
		AmountReceived: payment.AmountReceived,
		CreatedAt:      payment.CreatedAt,
		UpdatedAt:      payment.UpdatedAt,
	})
	if err != nil {
		return Result{PayCurrency: PayCurrency}, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.Info("Deposit recorded",
		"user_id", userID,
		"transaction_id", payment.PaymentID,
		"balance", user.Balance,
	)

	return Result{
		TransactionID:  payment.PaymentID,
		PayAmount:      payment.PayAmount,
		PayCurrency:    PayCurrency,
		DepositAddress: payment.PayAddress,
		Minimum:        minAmount,
	}, nil
}

// newOrderID builds a unique human-scannable order id like ORD_1756500000000_1a2b3c4d
func newOrderID() string {
	return fmt.Sprintf("ORD_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
