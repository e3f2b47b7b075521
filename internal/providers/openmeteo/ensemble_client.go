package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API Docs: https://open-meteo.com/en/docs/ensemble-api
// Sample request: https://ensemble-api.open-meteo.com/v1/ensemble?latitude=36.17&longitude=-115.14&hourly=shortwave_radiation,temperature_2m,wind_speed_10m&models=gfs025&forecast_days=7&timeformat=iso8601&timezone=GMT
const (
	baseEnsembleURL = "https://ensemble-api.open-meteo.com/v1/ensemble"
)

type EnsembleClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewEnsembleClient() *EnsembleClient {
	return &EnsembleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseEnsembleURL,
	}
}

// NewEnsembleClientWithBaseURL creates a client against a custom endpoint,
// useful for testing with httptest servers.
func NewEnsembleClientWithBaseURL(base string) *EnsembleClient {
	c := NewEnsembleClient()
	c.baseURL = base
	return c
}

// GetEnsemble fetches per-member hourly shortwave radiation and meteorology
// for the GFS ensemble (GEFS 0.25 degree) at the given coordinate.
func (c *EnsembleClient) GetEnsemble(ctx context.Context, latitude, longitude float64, forecastDays int) (*EnsembleAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	hourlyVars := []string{
		"shortwave_radiation",
		"temperature_2m",
		"wind_speed_10m",
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("hourly", strings.Join(hourlyVars, ","))
	q.Set("models", "gfs025")
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	q.Set("timeformat", "iso8601")
	q.Set("timezone", "GMT")
	q.Set("wind_speed_unit", "ms")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp EnsembleAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &apiResp, nil
}
