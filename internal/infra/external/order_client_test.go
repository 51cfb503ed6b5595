//go:build unit

package external

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string, retryAttempts int) *OrderClient {
	t.Helper()
	cfg := config.ExternalAPIConfig{
		BaseURL:        serverURL,
		APIKey:         "test-key",
		Timeout:        2 * time.Second,
		RetryAttempts:  retryAttempts,
		OrganizationID: 305,
	}
	cb := breaker.New("order-api", breaker.Settings{Excluded: IsExcluded},
		clock.NewMockClock(time.Now()), slog.Default())
	c := NewOrderClient(cfg, cb, slog.Default())
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func TestOrderClient_CreateOrder(t *testing.T) {
	t.Run("success decodes order id and keeps raw body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"order_id":"ORD-1","status":"created"}`))
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL, 3).CreateOrder(context.Background(), OrderRequest{ClientID: "4411"})
		require.NoError(t, err)
		assert.Equal(t, "ORD-1", res.OrderID)
		assert.Equal(t, "created", res.Status)
		assert.JSONEq(t, `{"order_id":"ORD-1","status":"created"}`, string(res.Raw))
	})

	t.Run("falls back to id field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"id":"ORD-2"}`))
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL, 1).CreateOrder(context.Background(), OrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ORD-2", res.OrderID)
	})

	t.Run("5xx retries until budget exhausted", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL, 3).CreateOrder(context.Background(), OrderRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServerFailure)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("5xx then success recovers within budget", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"order_id":"ORD-3"}`))
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL, 3).CreateOrder(context.Background(), OrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ORD-3", res.OrderID)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("4xx is terminal and not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL, 3).CreateOrder(context.Background(), OrderRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClientRequest)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("429 counts as server failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL, 1).CreateOrder(context.Background(), OrderRequest{})
		assert.ErrorIs(t, err, ErrServerFailure)
	})

	t.Run("open breaker aborts immediately", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL, 10)
		_, err := c.CreateOrder(context.Background(), OrderRequest{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, breaker.ErrOpen))
		// Default threshold is 5: five real calls, then the breaker opens
		// and the loop stops without touching the server again.
		assert.Equal(t, int32(5), calls.Load())
	})
}

func TestOrderClient_UpdateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/ORD-9", r.URL.Path)
		w.Write([]byte(`{"order_id":"ORD-9","status":"updated"}`))
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv.URL, 1).UpdateOrder(context.Background(), "ORD-9", OrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "updated", res.Status)
}
