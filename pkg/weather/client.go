package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the weatherapi.com endpoint root.
const DefaultBaseURL = "http://api.weatherapi.com"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

var (
	// ErrMissingAPIKey is returned before any request when no key is set.
	ErrMissingAPIKey = errors.New("weather: missing API key")

	// ErrNoData is returned when the provider answered without a body.
	ErrNoData = errors.New("no weather data received")

	// ErrMalformedResponse is returned when the body is not the expected
	// JSON document.
	ErrMalformedResponse = errors.New("malformed weather response")
)

// StatusError is returned for non-2xx responses. Code and Message are
// filled from the provider's error document when one is present.
type StatusError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// ClientConfig controls the weatherapi.com client.
type ClientConfig struct {
	// APIKey is sent as the key parameter. Required.
	APIKey string

	// BaseURL is the scheme and host of the API. Default: DefaultBaseURL.
	BaseURL string

	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client fetches current conditions from weatherapi.com.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: hc,
		logger:     logger.With("component", "weather"),
	}
}

// currentResponse mirrors the subset of current.json the screen shows.
// Pointers distinguish missing fields from zero values.
type currentResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC     *float64 `json:"temp_c"`
		Condition *struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current implements Provider.
func (c *Client) Current(ctx context.Context, q Query) (Result, error) {
	if c.apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}
	if q.Kind == KindCity && strings.TrimSpace(q.Text) == "" {
		return Result{}, ErrEmptyQuery
	}

	params := url.Values{
		"key": {c.apiKey},
		"q":   {q.String()},
	}
	endpoint := c.baseURL + "/v1/current.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("weather request failed", "query", q.String(), "error", err)
		return Result{}, fmt.Errorf("fetch current weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read weather response: %w", err)
	}
	c.logger.Debug("weather response",
		"query", q.String(),
		"kind", q.Kind.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"latency", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, statusError(resp.StatusCode, body)
	}
	return parseCurrent(body)
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil {
		se.Code = er.Error.Code
		se.Message = er.Error.Message
	}
	return se
}

// parseCurrent converts a current.json body into a Result.
func parseCurrent(body []byte) (Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Result{}, ErrNoData
	}

	var doc currentResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	switch {
	// A blank name would render a card with no place on it.
	case doc.Location == nil || doc.Location.Name == "":
		return Result{}, fmt.Errorf("%w: missing location.name", ErrMalformedResponse)
	case doc.Current == nil:
		return Result{}, fmt.Errorf("%w: missing current", ErrMalformedResponse)
	case doc.Current.TempC == nil:
		return Result{}, fmt.Errorf("%w: missing current.temp_c", ErrMalformedResponse)
	}

	res := Result{
		LocationName: doc.Location.Name,
		TemperatureC: *doc.Current.TempC,
	}
	if doc.Current.Condition != nil {
		res.Condition = doc.Current.Condition.Text
	}
	return res, nil
}
