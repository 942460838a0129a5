package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default option", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, "localhost:8080", c.ListenAddr, "default listen address not set")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, "prod", c.Environment, "default environment not set")
		require.Equal(t, "https://api.nowpayments.io", c.NowPaymentsAddr, "default processor address not set")
		require.Equal(t, "https://v6.exchangerate-api.com/v6", c.ExchangeRateAddr, "default rates address not set")
		require.Equal(t, "KES", c.BaseCurrency, "default base currency not set")
		require.Equal(t, "", c.NowPaymentsAPIKey, "processor key should be empty by default")
		require.Equal(t, "", c.ExchangeRateAPIKey, "rates key should be empty by default")
		require.Equal(t, "", c.CallbackURL, "callback URL should be empty by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			switch key {
			case "RUN_ADDRESS":
				return "localhost:9000"
			case "LOG_LEVEL":
				return "debug"
			case "NOWPAYMENTS_API_KEY":
				return "np-key"
			case "EXCHANGERATE_API_KEY":
				return "er-key"
			case "CALLBACK_URL":
				return "https://paygate.example.com/callback"
			case "BASE_CURRENCY":
				return "UGX"
			default:
				return ""
			}
		}

		c.LoadEnv(getenv)

		require.Equal(t, "localhost:9000", c.ListenAddr)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "np-key", c.NowPaymentsAPIKey)
		require.Equal(t, "er-key", c.ExchangeRateAPIKey)
		require.Equal(t, "https://paygate.example.com/callback", c.CallbackURL)
		require.Equal(t, "UGX", c.BaseCurrency)
		require.Equal(t, "https://api.nowpayments.io", c.NowPaymentsAddr, "unset env vars must keep defaults")
	})

	t.Run("parse flags", func(t *testing.T) {
		t.Run("valid flags", func(t *testing.T) {
			tests := []struct {
				name  string
				flags []string
			}{
				{
					name: "short",
					flags: []string{
						"-a", "localhost:9000",
						"-l", "debug",
						"-e", "dev",
						"-c", "https://paygate.example.com/callback",
						"--nowpayments-key", "np-key",
						"--exchangerate-key", "er-key",
					},
				},
				{
					name: "long",
					flags: []string{
						"--address", "localhost:9000",
						"--log-level", "debug",
						"--environment", "dev",
						"--callback-url", "https://paygate.example.com/callback",
						"--nowpayments-key", "np-key",
						"--exchangerate-key", "er-key",
					},
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					c := NewConfig()

					err := c.ParseFlags(tt.flags)

					require.NoError(t, err, "correct flags must be parsed without error")
					require.Equal(t, "localhost:9000", c.ListenAddr)
					require.Equal(t, "debug", c.LogLevel)
					require.Equal(t, "dev", c.Environment)
					require.Equal(t, "https://paygate.example.com/callback", c.CallbackURL)
					require.Equal(t, "np-key", c.NowPaymentsAPIKey)
					require.Equal(t, "er-key", c.ExchangeRateAPIKey)
				})
			}
		})

		t.Run("unknown flag", func(t *testing.T) {
			c := NewConfig()

			err := c.ParseFlags([]string{"--what-is-this", "value"})

			require.Error(t, err)
		})
	})

	t.Run("validate", func(t *testing.T) {
		valid := func() *Config {
			c := NewConfig()
			c.NowPaymentsAPIKey = "np-key"
			c.ExchangeRateAPIKey = "er-key"
			c.CallbackURL = "https://paygate.example.com/callback"
			return c
		}

		t.Run("complete config is valid", func(t *testing.T) {
			require.NoError(t, valid().Validate())
		})

		t.Run("missing processor key", func(t *testing.T) {
			c := valid()
			c.NowPaymentsAPIKey = ""
			require.Error(t, c.Validate())
		})

		t.Run("missing rates key", func(t *testing.T) {
			c := valid()
			c.ExchangeRateAPIKey = ""
			require.Error(t, c.Validate())
		})

		t.Run("missing callback URL", func(t *testing.T) {
			c := valid()
			c.CallbackURL = ""
			require.Error(t, c.Validate())
		})
	})
}
