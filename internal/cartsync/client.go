package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Syncer pushes the full line list of one restaurant to the remote cart service.
type Syncer interface {
	Sync(ctx context.Context, payload *models.CartSyncPayload) error
}

// Prober reports whether the remote cart service is reachable.
type Prober interface {
	Online(ctx context.Context) bool
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg config.CartSync) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Sync implements Syncer. The remote side replaces its copy of the restaurant cart.
func (c *Client) Sync(ctx context.Context, payload *models.CartSyncPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal cart payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/carts/%s/restaurants/%s",
		c.baseURL, url.PathEscape(payload.CustomerID), url.PathEscape(payload.RestaurantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build cart sync request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cart sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cart sync returned status %d", resp.StatusCode)
	}

	return nil
}

type Probe struct {
	baseURL string
	client  *http.Client
}

func NewProbe(cfg config.CartSync) *Probe {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &Probe{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Online implements Prober. Any transport error or non-2xx answer counts as offline.
func (p *Probe) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
