package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lox/parisweather/internal/httputil"
	"github.com/lox/parisweather/internal/metrics"
	"github.com/lox/parisweather/internal/models"
)

const (
	// DefaultForecastURL is the Open-Meteo daily forecast endpoint.
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	ParisLat = 48.85
	ParisLon = 2.35

	dailyFields = "temperature_2m_max,temperature_2m_min"
)

// FetchResult records what happened during a fetch for auditing.
type FetchResult struct {
	URL          string
	StartedAt    time.Time
	FinishedAt   time.Time
	HTTPStatus   int
	ResponseSize int
	RecordCount  int
	Error        error
}

// Client fetches daily temperatures for a single fixed location.
type Client struct {
	client  *http.Client
	baseURL string
	lat     float64
	lon     float64
}

// NewClient creates an Open-Meteo client for Paris. An empty baseURL uses
// DefaultForecastURL.
func NewClient(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = httputil.NewClient(0)
	}
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &Client{
		client:  client,
		baseURL: baseURL,
		lat:     ParisLat,
		lon:     ParisLon,
	}
}

// dailyResponse mirrors the parts of the forecast response we read. Arrays
// hold pointers so that JSON nulls are distinguishable from zero.
type dailyResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     *struct {
		Time    []*string  `json:"time"`
		TempMax []*float64 `json:"temperature_2m_max"`
		TempMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// URL returns the fully qualified request URL.
func (c *Client) URL() string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(c.lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(c.lon, 'f', -1, 64))
	values.Set("daily", dailyFields)
	values.Set("timezone", "auto")
	return c.baseURL + "?" + values.Encode()
}

// FetchDaily performs a single GET and converts the response into a table.
// It returns the raw body alongside the table so callers can archive it.
// Failures are never retried.
func (c *Client) FetchDaily(ctx context.Context) (*models.Table, []byte, *FetchResult, error) {
	result := &FetchResult{URL: c.URL(), StartedAt: time.Now().UTC()}
	table, body, err := c.fetch(ctx, result)
	result.FinishedAt = time.Now().UTC()
	result.Error = err

	status := "error"
	if result.HTTPStatus != 0 {
		status = strconv.Itoa(result.HTTPStatus)
	}
	metrics.APICallsTotal.WithLabelValues(status).Inc()
	metrics.APILatency.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	if err != nil {
		return nil, body, result, err
	}
	metrics.DaysFetched.Set(float64(table.Len()))
	return table, body, result, nil
}

func (c *Client) fetch(ctx context.Context, result *FetchResult) (*models.Table, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{URL: result.URL, Err: err}
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	result.ResponseSize = len(body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, body, &NetworkError{URL: result.URL, StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	if err != nil {
		return nil, body, &NetworkError{URL: result.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	table, err := ParseDaily(body)
	if err != nil {
		return nil, body, err
	}
	result.RecordCount = table.Len()
	return table, body, nil
}

// ParseDaily converts an Open-Meteo daily forecast body into a table,
// preserving the order of the response arrays.
func ParseDaily(body []byte) (*models.Table, error) {
	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	if data.Daily == nil {
		return nil, &MalformedResponseError{Field: "daily", Reason: "missing"}
	}

	d := data.Daily
	switch {
	case d.Time == nil:
		return nil, &MalformedResponseError{Field: "daily.time", Reason: "missing"}
	case d.TempMax == nil:
		return nil, &MalformedResponseError{Field: "daily.temperature_2m_max", Reason: "missing"}
	case d.TempMin == nil:
		return nil, &MalformedResponseError{Field: "daily.temperature_2m_min", Reason: "missing"}
	}
	if len(d.TempMax) != len(d.Time) {
		return nil, &MalformedResponseError{
			Field:  "daily.temperature_2m_max",
			Reason: fmt.Sprintf("has %d values for %d days", len(d.TempMax), len(d.Time)),
		}
	}
	if len(d.TempMin) != len(d.Time) {
		return nil, &MalformedResponseError{
			Field:  "daily.temperature_2m_min",
			Reason: fmt.Sprintf("has %d values for %d days", len(d.TempMin), len(d.Time)),
		}
	}

	table := &models.Table{
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Timezone:  data.Timezone,
		Records:   make([]models.Record, 0, len(d.Time)),
	}
	for i := range d.Time {
		if d.Time[i] == nil {
			return nil, nullValue("daily.time", i)
		}
		if d.TempMax[i] == nil {
			return nil, nullValue("daily.temperature_2m_max", i)
		}
		if d.TempMin[i] == nil {
			return nil, nullValue("daily.temperature_2m_min", i)
		}
		table.Records = append(table.Records, models.NewRecord(*d.Time[i], *d.TempMax[i], *d.TempMin[i]))
	}
	return table, nil
}

func nullValue(field string, i int) error {
	return &MalformedResponseError{Field: fmt.Sprintf("%s[%d]", field, i), Reason: "null"}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
