package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parisBody = `{"location":{"name":"Paris"},"current":{"temp_c":18,"condition":{"text":"Cloudy"}}}`

// newTestServer serves body with status and records the last query seen.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value, *atomic.Int32) {
	t.Helper()
	var lastQuery atomic.Value
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		lastQuery.Store(r.URL.Query())
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastQuery, &hits
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{APIKey: "test-key", BaseURL: baseURL, Timeout: 5 * time.Second})
}

func TestCityQueryTrims(t *testing.T) {
	q, err := CityQuery("  Paris \t")
	require.NoError(t, err)
	assert.Equal(t, KindCity, q.Kind)
	assert.Equal(t, "Paris", q.String())
}

func TestCityQueryRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := CityQuery(in)
		assert.ErrorIs(t, err, ErrEmptyQuery, "input %q", in)
	}
}

func TestCoordinatesQueryString(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     string
	}{
		{48.85, 2.35, "48.85,2.35"},
		{-33.8688, 151.2093, "-33.8688,151.2093"},
		{0, 0, "0,0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoordinatesQuery(tt.lat, tt.lon).String())
	}
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "18°C", FormatTemperature(18))
	assert.Equal(t, "18.5°C", FormatTemperature(18.5))
	assert.Equal(t, "-4°C", FormatTemperature(-4))
}

func TestCurrentParsesResult(t *testing.T) {
	srv, lastQuery, _ := newTestServer(t, http.StatusOK, parisBody)
	c := newTestClient(srv.URL)

	q, _ := CityQuery(" Paris ")
	res, err := c.Current(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, Result{LocationName: "Paris", TemperatureC: 18, Condition: "Cloudy"}, res)
	assert.Equal(t, "18°C", res.Temperature())

	params := lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"Paris"}, params["q"])
	assert.Equal(t, []string{"test-key"}, params["key"])
}

func TestCurrentSendsCoordinates(t *testing.T) {
	srv, lastQuery, _ := newTestServer(t, http.StatusOK, parisBody)
	c := newTestClient(srv.URL)

	_, err := c.Current(context.Background(), CoordinatesQuery(48.85, 2.35))
	require.NoError(t, err)

	params := lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"48.85,2.35"}, params["q"])
}

func TestCurrentConditionOptional(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusOK, `{"location":{"name":"Oslo"},"current":{"temp_c":-3.5}}`)
	res, err := newTestClient(srv.URL).Current(context.Background(), CoordinatesQuery(59.9, 10.7))
	require.NoError(t, err)
	assert.Equal(t, "Oslo", res.LocationName)
	assert.Equal(t, -3.5, res.TemperatureC)
	assert.False(t, res.HasCondition())
}

func TestCurrentNoData(t *testing.T) {
	for _, body := range []string{"", "  ", "null"} {
		srv, _, _ := newTestServer(t, http.StatusOK, body)
		_, err := newTestClient(srv.URL).Current(context.Background(), CoordinatesQuery(1, 2))
		assert.ErrorIs(t, err, ErrNoData, "body %q", body)
	}
}

func TestCurrentMalformed(t *testing.T) {
	bodies := []string{
		`{not json`,
		`{"current":{"temp_c":1}}`,
		`{"location":{"name":""},"current":{"temp_c":1}}`,
		`{"location":{"name":"Paris"}}`,
		`{"location":{"name":"Paris"},"current":{"condition":{"text":"Sunny"}}}`,
	}
	for _, body := range bodies {
		srv, _, _ := newTestServer(t, http.StatusOK, body)
		_, err := newTestClient(srv.URL).Current(context.Background(), CoordinatesQuery(1, 2))
		assert.ErrorIs(t, err, ErrMalformedResponse, "body %q", body)
	}
}

func TestCurrentStatusError(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusBadRequest,
		`{"error":{"code":1006,"message":"No matching location found."}}`)
	q, _ := CityQuery("Atlantis")
	_, err := newTestClient(srv.URL).Current(context.Background(), q)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, 1006, se.Code)
	assert.Equal(t, "request failed with status code 400: No matching location found.", err.Error())
}

func TestCurrentStatusErrorWithoutBody(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusBadGateway, "")
	_, err := newTestClient(srv.URL).Current(context.Background(), CoordinatesQuery(1, 2))
	assert.EqualError(t, err, "request failed with status code 502")
}

func TestCurrentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newTestClient(base).Current(context.Background(), CoordinatesQuery(1, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch current weather")
}

func TestCurrentMissingKeySkipsRequest(t *testing.T) {
	srv, _, hits := newTestServer(t, http.StatusOK, parisBody)
	c := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := c.Current(context.Background(), CoordinatesQuery(1, 2))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, hits.Load())
}

func TestCurrentHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(srv.URL).Current(ctx, CoordinatesQuery(1, 2))
	assert.ErrorIs(t, err, context.Canceled)
}
