// Package openweather reads forecast temperatures from OpenWeatherMap.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

const (
	defaultBaseURL      = "https://api.openweathermap.org/data/2.5"
	defaultForecastHour = "15:00:00"
)

// Client fetches the 5-day forecast for a city.
type Client struct {
	baseURL      string
	apiKey       string
	forecastHour string
	httpClient   *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey, forecastHour string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	hour := strings.TrimSpace(forecastHour)
	if hour == "" {
		hour = defaultForecastHour
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(base, "/"),
		apiKey:       apiKey,
		forecastHour: hour,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Temperature returns the forecast temperature (°C) at the configured hour.
func (c *Client) Temperature(ctx context.Context, city string) (float64, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return 0, apperrors.Wrap(apperrors.CodeWeather, "city is required", nil)
	}
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	endpoint := c.baseURL + "/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeWeather, "build forecast request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeWeather, "forecast request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, apperrors.Wrap(apperrors.CodeWeather, "forecast request error",
			fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload)))
	}

	var raw forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeWeather, "decode forecast response", err)
	}
	for _, item := range raw.List {
		if strings.Contains(item.DtTxt, c.forecastHour) {
			return item.Main.Temp, nil
		}
	}
	return 0, apperrors.Wrap(apperrors.CodeWeather,
		fmt.Sprintf("no forecast entry at %s for %s", c.forecastHour, city), nil)
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	DtTxt string       `json:"dt_txt"`
	Main  forecastMain `json:"main"`
}

type forecastMain struct {
	Temp float64 `json:"temp"`
}
