package horizons

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

	"golang.org/x/time/rate"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

// DefaultEndpoint is the JPL Horizons REST API.
const DefaultEndpoint = "https://ssd.jpl.nasa.gov/api/horizons.api"

const (
	startMarker = "$$SOE"
	endMarker   = "$$EOE"

	unixEpochJD = 2440587.5

	// Horizons asks clients not to hammer the API; a snapshot issues two
	// requests per planet.
	defaultInterval = 250 * time.Millisecond
	defaultBurst    = 2
)

// Client resolves observer ranges from JPL Horizons.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

var _ ports.Ephemeris = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint string, client *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint: endpoint,
		http:     client,
		limiter:  rate.NewLimiter(rate.Every(defaultInterval), defaultBurst),
	}
}

// WithLimiter replaces the request pacing; nil disables it.
func (c *Client) WithLimiter(limiter *rate.Limiter) *Client {
	c.limiter = limiter
	return c
}

type response struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Distance returns the astrometric range between the geocenter-style center of
// from and the target to, in astronomical units.
func (c *Client) Distance(ctx context.Context, from, to domain.Body, at time.Time) (float64, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit: %w", err)
		}
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("COMMAND", quote(to.Key))
	query.Set("OBJ_DATA", quote("NO"))
	query.Set("MAKE_EPHEM", quote("YES"))
	query.Set("EPHEM_TYPE", quote("OBSERVER"))
	query.Set("CENTER", quote("500@"+from.Key))
	query.Set("TLIST", quote(strconv.FormatFloat(julianDate(at), 'f', 6, 64)))
	query.Set("QUANTITIES", quote("20"))
	query.Set("CSV_FORMAT", quote("YES"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("horizons error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != "" {
		return 0, fmt.Errorf("horizons: %s", decoded.Error)
	}

	return parseRange(decoded.Result)
}

// parseRange extracts the range (delta) column of the first ephemeris row.
func parseRange(result string) (float64, error) {
	start := strings.Index(result, startMarker)
	end := strings.Index(result, endMarker)
	if start < 0 || end < start {
		return 0, fmt.Errorf("horizons: no ephemeris table in result")
	}

	for _, line := range strings.Split(result[start+len(startMarker):end], "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		for _, field := range fields[1:] {
			if v, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
				return v, nil
			}
		}
		return 0, fmt.Errorf("horizons: no range column in row %q", strings.TrimSpace(line))
	}

	return 0, fmt.Errorf("horizons: empty ephemeris table")
}

func julianDate(t time.Time) float64 {
	return float64(t.UTC().UnixNano())/float64(24*time.Hour) + unixEpochJD
}

func quote(v string) string {
	return "'" + v + "'"
}
