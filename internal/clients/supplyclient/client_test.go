package supplyclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(&config.SupplyConfig{
		URL:           server.URL + "/api/supply?token=pha",
		Timeout:       time.Second,
		MaxRetryTimes: 3,
		RetryInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(&config.SupplyConfig{URL: "https://example.com/v1/supply?token=pha"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", c.GetBaseURL())
	assert.Equal(t, "/v1/supply?token=pha", c.path)
}

func TestGetAvailableSupply(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/supply", r.URL.Path)
			assert.Equal(t, "pha", r.URL.Query().Get("token"))
			_, _ = w.Write([]byte(`{"available_supply": 702500000.5}`))
		})

		supply, err := c.GetAvailableSupply(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("702500000.5").Equal(supply))
	})
	t.Run("quoted number", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"available_supply": "1000"}`))
		})

		supply, err := c.GetAvailableSupply(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(supply))
	})
	t.Run("retries rate limit and server errors", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch requests.Add(1) {
			case 1:
				w.WriteHeader(http.StatusTooManyRequests)
			case 2:
				w.WriteHeader(http.StatusBadGateway)
			default:
				_, _ = w.Write([]byte(`{"available_supply": 5}`))
			}
		})

		supply, err := c.GetAvailableSupply(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5).Equal(supply))
		assert.EqualValues(t, 3, requests.Load())
	})
	t.Run("gives up after max retries", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.GetAvailableSupply(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get available supply")
		assert.EqualValues(t, 3, requests.Load())
	})
	t.Run("client error is not retried", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := c.GetAvailableSupply(ctx)
		require.Error(t, err)
		assert.EqualValues(t, 1, requests.Load())
	})
	t.Run("missing field", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(`{"total_supply": 5}`))
		})

		_, err := c.GetAvailableSupply(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "available_supply")
		assert.EqualValues(t, 1, requests.Load())
	})
	t.Run("negative supply is not retried", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(`{"available_supply": -5}`))
		})

		_, err := c.GetAvailableSupply(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative available supply")
		assert.EqualValues(t, 1, requests.Load())
	})
	t.Run("malformed body is not retried", func(t *testing.T) {
		var requests atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := c.GetAvailableSupply(ctx)
		require.Error(t, err)
		assert.EqualValues(t, 1, requests.Load())
	})
}
