// Package geocoder wraps a Nominatim-style forward geocoding endpoint.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	dErrors "keepsake/pkg/domain-errors"
)

// Result is one forward-geocoding hit.
type Result struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Client calls the configured geocoding provider.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// searchResponse mirrors the provider's wire format; coordinates arrive as
// strings.
type searchResponse []struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a free-text place to coordinates. A place the provider
// doesn't know yields CodeNotFound; transport and provider failures yield
// CodeUnavailable so callers can tell "no such place" from "try again".
func (c *Client) Lookup(ctx context.Context, place string) (*Result, error) {
	tracer := otel.Tracer("keepsake/geocoder")
	ctx, span := tracer.Start(ctx, "geocoder.lookup")
	defer span.End()
	span.SetAttributes(attribute.String("geocode.query", place))

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build geocode request")
	}
	req.Header.Set("User-Agent", "keepsake/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "geocoder is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("geocoder returned %d", resp.StatusCode))
	}

	var hits searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "geocoder sent an unreadable response")
	}
	if len(hits) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "place not found")
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "geocoder sent a bad latitude")
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "geocoder sent a bad longitude")
	}

	span.SetAttributes(attribute.Float64("geocode.lat", lat), attribute.Float64("geocode.lng", lng))
	return &Result{Lat: lat, Lng: lng, DisplayName: hits[0].DisplayName}, nil
}
