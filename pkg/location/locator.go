package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gitlab.com/tinyland/lab/weatherday/pkg/cache"
)

// DefaultIPLookupURL is the ip-api.com endpoint limited to the fields read.
const DefaultIPLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// Coordinates is a WGS 84 position.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Locator reads the device's current position. Callers must hold a granted
// permission before calling it.
type Locator interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// StaticLocator always reports the same position.
type StaticLocator struct {
	Position Coordinates
}

// CurrentPosition implements Locator.
func (l StaticLocator) CurrentPosition(_ context.Context) (Coordinates, error) {
	return l.Position, nil
}

// IPLocator approximates the position from the public IP address using an
// ip-api.com compatible endpoint.
type IPLocator struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIPLocator returns an IPLocator querying url (DefaultIPLookupURL when
// empty).
func NewIPLocator(url string, timeout time.Duration, logger *slog.Logger) *IPLocator {
	if url == "" {
		url = DefaultIPLookupURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IPLocator{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "ip-locator"),
	}
}

type ipLookupResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// CurrentPosition implements Locator.
func (l *IPLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("build ip lookup request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("ip lookup: unexpected status code %d", resp.StatusCode)
	}

	var body ipLookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("ip lookup: decode response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return Coordinates{}, fmt.Errorf("ip lookup failed: %s", body.Message)
	}
	if body.Lat == nil || body.Lon == nil {
		return Coordinates{}, fmt.Errorf("ip lookup: response has no coordinates")
	}

	pos := Coordinates{Latitude: *body.Lat, Longitude: *body.Lon}
	l.logger.Debug("resolved position from ip", "position", pos.String())
	return pos, nil
}

// positionKey is the cache key under which the last position is kept.
const positionKey = "location:position"

// CachedLocator serves a recent position from the disk cache and falls
// back to the wrapped Locator when the entry is missing or expired.
// Positions are kept for the store's default TTL.
type CachedLocator struct {
	next   Locator
	store  *cache.Store
	logger *slog.Logger
}

// NewCachedLocator wraps next. A nil store disables caching.
func NewCachedLocator(next Locator, store *cache.Store, logger *slog.Logger) *CachedLocator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedLocator{next: next, store: store, logger: logger.With("component", "locator-cache")}
}

// CurrentPosition implements Locator.
func (l *CachedLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if l.store == nil {
		return l.next.CurrentPosition(ctx)
	}
	if pos, ok := cache.GetTyped[Coordinates](l.store, positionKey); ok {
		l.logger.Debug("position cache hit", "position", pos.String())
		return pos, nil
	}
	pos, err := l.next.CurrentPosition(ctx)
	if err != nil {
		return Coordinates{}, err
	}
	if err := cache.PutTyped(l.store, positionKey, pos); err != nil {
		l.logger.Warn("failed to cache position", "error", err)
	}
	return pos, nil
}

// Forget drops the cached position.
func (l *CachedLocator) Forget() error {
	if l.store == nil {
		return nil
	}
	return l.store.Delete(positionKey)
}
