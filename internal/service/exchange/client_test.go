package exchange

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/okwaro/paygate/internal/logger"
)

func TestClient_ConvertToUSD(t *testing.T) {
	t.Parallel()

	t.Run("converts with returned rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/test-key/latest/KES", r.URL.Path)
			require.Equal(t, http.MethodGet, r.Method)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"result":"success","base_code":"KES","conversion_rates":{"USD":0.0072,"EUR":0.0066}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key", "kes", logger.NewNoOpLogger())

		usd, err := client.ConvertToUSD(t.Context(), decimal.NewFromInt(1000))

		require.NoError(t, err)
		require.True(t, usd.Equal(decimal.RequireFromString("7.2")), "expected 7.2, got %s", usd)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "bad-key", "KES", logger.NewNoOpLogger())

		_, err := client.ConvertToUSD(t.Context(), decimal.NewFromInt(100))

		require.Error(t, err)
		require.Contains(t, err.Error(), "status 403")
	})

	t.Run("missing USD rate is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":"success","conversion_rates":{"EUR":0.0066}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key", "KES", logger.NewNoOpLogger())

		_, err := client.ConvertToUSD(t.Context(), decimal.NewFromInt(100))

		require.Error(t, err)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not-json`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-key", "KES", logger.NewNoOpLogger())

		_, err := client.ConvertToUSD(t.Context(), decimal.NewFromInt(100))

		require.Error(t, err)
	})

	t.Run("unreachable service is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		client := NewClient(srv.URL, "test-key", "KES", logger.NewNoOpLogger())

		_, err := client.ConvertToUSD(t.Context(), decimal.NewFromInt(100))

		require.Error(t, err)
	})
}
