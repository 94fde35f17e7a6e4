package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Provider interface {
	Directions(ctx context.Context, req models.RouteRequest) (*models.Route, error)
}

type directionsResponse struct {
	DistanceKm  float64           `json:"distance_km"`
	DurationMin float64           `json:"duration_min"`
	Coordinates []models.Location `json:"coordinates"`
	Error       string            `json:"error,omitempty"`
}

type httpProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(cfg config.Routing) Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &httpProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Directions implements Provider.
func (p *httpProvider) Directions(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	mode := req.Mode
	if mode == "" {
		mode = models.TravelModeDriving
	}

	q := url.Values{}
	q.Set("origin", formatLatLng(req.Origin))
	q.Set("destination", formatLatLng(req.Destination))
	q.Set("mode", string(mode))
	if p.apiKey != "" {
		q.Set("key", p.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/directions?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode directions response (status %d): %w", resp.StatusCode, err)
	}

	if body.Error != "" {
		return nil, errors.New(body.Error)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("directions provider returned status %d", resp.StatusCode)
	}

	return &models.Route{
		DistanceKm:  body.DistanceKm,
		DurationMin: body.DurationMin,
		Coordinates: body.Coordinates,
	}, nil
}

func formatLatLng(l models.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
