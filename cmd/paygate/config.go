package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/okwaro/paygate/internal/logger"
)

const (
	defaultListenAddr       = "localhost:8080"
	defaultLoggingLevel     = logger.LevelInfo
	defaultEnvironment      = EnvProduction
	defaultNowPaymentsAddr  = "https://api.nowpayments.io"
	defaultExchangeRateAddr = "https://v6.exchangerate-api.com/v6"
	defaultBaseCurrency     = "KES"
)

const (
	EnvDevelopment = "dev"
	EnvProduction  = "prod"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the paygate service will be run
	ListenAddr string

	// Environment (selects text vs JSON logging)
	Environment string

	// NOWPayments API base address and key
	NowPaymentsAddr   string
	NowPaymentsAPIKey string

	// Exchange rate API base address and key
	ExchangeRateAddr   string
	ExchangeRateAPIKey string

	// URL the processor posts payment-status callbacks to
	CallbackURL string

	// Currency deposit amounts are requested in
	BaseCurrency string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:         defaultLoggingLevel,
		ListenAddr:       defaultListenAddr,
		Environment:      defaultEnvironment,
		NowPaymentsAddr:  defaultNowPaymentsAddr,
		ExchangeRateAddr: defaultExchangeRateAddr,
		BaseCurrency:     defaultBaseCurrency,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":          setString(&c.ListenAddr),
		"LOG_LEVEL":            setString(&c.LogLevel),
		"ENVIRONMENT":          setString(&c.Environment),
		"NOWPAYMENTS_ADDRESS":  setString(&c.NowPaymentsAddr),
		"NOWPAYMENTS_API_KEY":  setString(&c.NowPaymentsAPIKey),
		"EXCHANGERATE_ADDRESS": setString(&c.ExchangeRateAddr),
		"EXCHANGERATE_API_KEY": setString(&c.ExchangeRateAPIKey),
		"CALLBACK_URL":         setString(&c.CallbackURL),
		"BASE_CURRENCY":        setString(&c.BaseCurrency),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("paygate", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVar(&c.NowPaymentsAddr, "nowpayments-address", c.NowPaymentsAddr, "NOWPayments API address")
	fs.StringVar(&c.NowPaymentsAPIKey, "nowpayments-key", c.NowPaymentsAPIKey, "NOWPayments API key")
	fs.StringVar(&c.ExchangeRateAddr, "exchangerate-address", c.ExchangeRateAddr, "Exchange rate API address")
	fs.StringVar(&c.ExchangeRateAPIKey, "exchangerate-key", c.ExchangeRateAPIKey, "Exchange rate API key")
	fs.StringVarP(&c.CallbackURL, "callback-url", "c", c.CallbackURL, "Payment status callback URL")
	fs.StringVar(&c.BaseCurrency, "base-currency", c.BaseCurrency, "Currency deposits are requested in")

	return fs.Parse(args)
}

// Validate checks the required startup options that have no usable defaults
func (c *Config) Validate() error {
	switch {
	case c.NowPaymentsAPIKey == "":
		return errors.New("NOWPayments API key is required")
	case c.ExchangeRateAPIKey == "":
		return errors.New("exchange rate API key is required")
	case c.CallbackURL == "":
		return errors.New("callback URL is required")
	}

	return nil
}
