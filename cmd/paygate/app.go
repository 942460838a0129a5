package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/okwaro/paygate/internal/handlers"
	"github.com/okwaro/paygate/internal/logger"
	"github.com/okwaro/paygate/internal/repository/memory"
	"github.com/okwaro/paygate/internal/service/deposit"
	"github.com/okwaro/paygate/internal/service/exchange"
	"github.com/okwaro/paygate/internal/service/nowpayments"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(c *Config) (*ServerApp, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	log, err := newLogger(c)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Initialize the ledger store
	// It lives as long as the app: a fresh instance per test, one per process
	ledger := memory.NewLedger()

	// Initialize upstream clients
	rates := exchange.NewClient(c.ExchangeRateAddr, c.ExchangeRateAPIKey, c.BaseCurrency, log)
	payments := nowpayments.NewClient(c.NowPaymentsAddr, c.NowPaymentsAPIKey, log)

	// Initialize services
	depositService := deposit.NewService(deposit.Config{
		CallbackURL:  c.CallbackURL,
		BaseCurrency: c.BaseCurrency,
	}, rates, payments, ledger, log)

	mux := handlers.NewRouter(depositService, payments, ledger, log)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

func newLogger(c *Config) (logger.Logger, error) {
	if c.Environment == EnvDevelopment {
		return logger.NewTextLogger(c.LogLevel)
	}
	return logger.NewJSONLogger(c.LogLevel)
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
