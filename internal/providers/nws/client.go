package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// API Docs: https://www.weather.gov/documentation/services-web-api
// Sample requests:
// - https://api.weather.gov/points/36.1699,-115.1398
// - https://api.weather.gov/gridpoints/VEF/123,98/forecast/hourly
// - https://api.weather.gov/gridpoints/VEF/123,98
const (
	baseURL = "https://api.weather.gov"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new NWS API client. The contact string identifies the
// caller per the api.weather.gov usage policy.
func NewClient(contact string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		userAgent:  contact,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// This is useful for testing with httptest servers.
func NewClientWithBaseURL(contact, base string) *Client {
	c := NewClient(contact)
	c.baseURL = base
	return c
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetPoint resolves a coordinate to its NWS grid point metadata.
func (c *Client) GetPoint(ctx context.Context, latitude, longitude float64) (*PointAPIResponse, error) {
	url := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, latitude, longitude)

	var apiResp PointAPIResponse
	if err := c.get(ctx, url, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Properties.ForecastHourly == "" {
		return nil, fmt.Errorf("points response missing forecastHourly URL")
	}
	return &apiResp, nil
}

// GetHourlyForecast fetches the point hourly forecast from the URL returned
// by GetPoint.
func (c *Client) GetHourlyForecast(ctx context.Context, url string) (*HourlyForecastAPIResponse, error) {
	var apiResp HourlyForecastAPIResponse
	if err := c.get(ctx, url, &apiResp); err != nil {
		return nil, err
	}
	if len(apiResp.Properties.Periods) == 0 {
		return nil, fmt.Errorf("hourly forecast returned no periods")
	}
	return &apiResp, nil
}

// GetGridForecast fetches the raw forecast grid data (NDFD-derived fields)
// from the URL returned by GetPoint.
func (c *Client) GetGridForecast(ctx context.Context, url string) (*GridForecastAPIResponse, error) {
	var apiResp GridForecastAPIResponse
	if err := c.get(ctx, url, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}
