package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/pkg/errs"
)

var (
	// ErrClientRequest marks terminal 4xx rejections. Not retried, and
	// excluded from breaker failure counting: our bad request says nothing
	// about upstream health.
	ErrClientRequest = errs.New("order api rejected request")
	// ErrServerFailure marks 5xx, 429 and transport failures. Retried and
	// counted by the breaker.
	ErrServerFailure = errs.New("order api unavailable")
)

// IsExcluded is the breaker predicate for order-api errors.
func IsExcluded(err error) bool {
	return errors.Is(err, ErrClientRequest)
}

// OrderRequest is the payload sent to the insurer's order system when a
// submission is synced.
type OrderRequest struct {
	OrganizationID int      `json:"organization_id"`
	ClientID       string   `json:"client_id"`
	PolicyID       string   `json:"policy_id"`
	ServiceID      int      `json:"service_id"`
	Name           string   `json:"name"`
	DNI            string   `json:"dni"`
	CBU            *string  `json:"cbu,omitempty"`
	CUIT           *string  `json:"cuit,omitempty"`
	Email          string   `json:"email"`
	InvoiceURL     string   `json:"factura"`
	DocumentURLs   []string `json:"documents,omitempty"`
}

type OrderResult struct {
	OrderID string
	Status  string
	Raw     []byte
}

// OrderClient talks to the external order API. Every attempt runs through the
// shared circuit breaker; the retry budget and backoff come from config.
type OrderClient struct {
	httpClient *http.Client
	cfg        config.ExternalAPIConfig
	breaker    *breaker.Breaker
	logger     *slog.Logger
	sleep      func(context.Context, time.Duration) error
}

func NewOrderClient(cfg config.ExternalAPIConfig, cb *breaker.Breaker, logger *slog.Logger) *OrderClient {
	return &OrderClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		breaker:    cb,
		logger:     logger,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *OrderClient) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	return c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", req)
}

func (c *OrderClient) UpdateOrder(ctx context.Context, orderID string, req OrderRequest) (*OrderResult, error) {
	return c.do(ctx, http.MethodPut, c.cfg.BaseURL+"/orders/"+orderID, req)
}

func (c *OrderClient) do(ctx context.Context, method, url string, req OrderRequest) (*OrderResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal order request")
	}

	attempts := c.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var result *OrderResult
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = c.breaker.Do(ctx, func(ctx context.Context) error {
			var callErr error
			result, callErr = c.call(ctx, method, url, body)
			return callErr
		})
		if lastErr == nil {
			return result, nil
		}
		if errors.Is(lastErr, breaker.ErrOpen) || errors.Is(lastErr, ErrClientRequest) {
			return nil, lastErr
		}
		if attempt < attempts-1 {
			wait := time.Duration(1<<attempt) * time.Second
			c.logger.Warn("order api call failed, retrying",
				"attempt", attempt+1, "wait", wait, "error", lastErr)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, errs.Wrap(err, "retry interrupted")
			}
		}
	}
	return nil, lastErr
}

func (c *OrderClient) call(ctx context.Context, method, url string, body []byte) (*OrderResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "order api request failed"), ErrServerFailure)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to read order response"), ErrServerFailure)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var decoded struct {
			OrderID string `json:"order_id"`
			ID      string `json:"id"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "malformed order response"), ErrServerFailure)
		}
		orderID := decoded.OrderID
		if orderID == "" {
			orderID = decoded.ID
		}
		return &OrderResult{OrderID: orderID, Status: decoded.Status, Raw: raw}, nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, errs.Mark(
			fmt.Errorf("order api returned %d: %s", resp.StatusCode, truncate(raw, 256)),
			ErrServerFailure)

	default:
		return nil, errs.Mark(
			fmt.Errorf("order api returned %d: %s", resp.StatusCode, truncate(raw, 256)),
			ErrClientRequest)
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
