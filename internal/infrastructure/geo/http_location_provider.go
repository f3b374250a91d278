package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/checkout"
)

// HTTPLocationProvider asks an IP-geolocation service for the caller's
// approximate position. The checkout composer bounds each call with a
// deadline; a slow or failing provider degrades to manual address entry.
type HTTPLocationProvider struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPLocationProvider creates a provider against the given base URL.
func NewHTTPLocationProvider(baseURL string, logger *zap.Logger) *HTTPLocationProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPLocationProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		// The context carries the real deadline; this is a safety net.
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Acquire implements the composer's location port.
func (p *HTTPLocationProvider) Acquire(ctx context.Context) (checkout.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/position", nil)
	if err != nil {
		return checkout.Coordinates{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return checkout.Coordinates{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return checkout.Coordinates{}, fmt.Errorf("geolocation service returned %d", resp.StatusCode)
	}

	var payload struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return checkout.Coordinates{}, fmt.Errorf("geolocation response undecodable: %w", err)
	}

	return checkout.Coordinates{Lat: payload.Lat, Lng: payload.Lng}, nil
}

var _ appcheckout.LocationProvider = (*HTTPLocationProvider)(nil)
