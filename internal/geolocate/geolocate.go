// Package geolocate resolves the caller's location from an IP geolocation
// HTTP service speaking the ip-api.com JSON dialect.
package geolocate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnavailable wraps transport failures and service-side refusals.
var ErrUnavailable = errors.New("geolocation service unavailable")

const defaultTimeout = 10 * time.Second

// Client queries an ip-api.com style endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient builds a client for endpoint. timeout <= 0 falls back to the
// default.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type response struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Query   string  `json:"query"`
}

// Locate returns the caller's position as a GeoJSON Point Feature, with the
// service's descriptive fields (city, country, ip) as properties when
// present.
func (c *Client) Locate(ctx context.Context) (*geojson.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if body.Status != "success" {
		msg := body.Message
		if msg == "" {
			msg = "lookup refused"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	f := geojson.NewFeature(orb.Point{body.Lon, body.Lat})
	if body.City != "" {
		f.Properties["city"] = body.City
	}
	if body.Country != "" {
		f.Properties["country"] = body.Country
	}
	if body.Query != "" {
		f.Properties["ip"] = body.Query
	}
	return f, nil
}
