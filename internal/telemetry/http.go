package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/pkg/core"
)

// HTTPSource fetches samples from the live timing API. One request covers
// one entity over one window; the API enforces a global rate limit and
// answers 429 when it is exceeded.
type HTTPSource struct {
	baseURL    string
	apiKey     string
	sessionKey uint32
	httpClient *http.Client
}

// NewHTTPSource creates a source bound to one session of the live API.
func NewHTTPSource(cfg config.HTTPSourceConfig, sessionKey uint32) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		sessionKey: sessionKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// locationRecord mirrors one element of the API's location response.
type locationRecord struct {
	DriverNumber uint16    `json:"driver_number"`
	Date         time.Time `json:"date"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
}

// Fetch requests the entity's positions for the window. The window bounds
// are forwarded to the API as date filters; their interpretation is the
// API's own.
func (s *HTTPSource) Fetch(ctx context.Context, entity core.EntityID, window core.Window) ([]core.Sample, error) {
	q := url.Values{}
	q.Set("session_key", strconv.FormatUint(uint64(s.sessionKey), 10))
	q.Set("driver_number", strconv.FormatUint(uint64(entity), 10))
	q.Set("date>", window.Start.UTC().Format(time.RFC3339Nano))
	q.Set("date<", window.End.UTC().Format(time.RFC3339Nano))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/location?%s", s.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("building location request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("location request for entity %d: %w", entity, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("location request returned status %d", resp.StatusCode)
	}

	var records []locationRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding location response: %w", err)
	}

	samples := make([]core.Sample, 0, len(records))
	for _, rec := range records {
		samples = append(samples, core.Sample{
			Entity:    core.EntityID(rec.DriverNumber),
			X:         rec.X,
			Y:         rec.Y,
			Timestamp: rec.Date,
		})
	}
	return samples, nil
}

// Close is a no-op; the underlying transport needs no teardown.
func (s *HTTPSource) Close() error {
	return nil
}
