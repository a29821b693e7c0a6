package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// LongitudeCacheTTL is how long a fetched longitude is reused for the
	// same body, frame and minute.
	LongitudeCacheTTL = 5 * time.Minute

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsProvider queries JPL Horizons for observer ecliptic longitudes.
// Each call is a blocking HTTP round trip on a cache miss, so the render
// path should only see it through a CachedProvider.
type HorizonsProvider struct {
	client  *http.Client
	baseURL string

	mu    sync.RWMutex
	cache map[lonKey]cachedLongitude
}

type lonKey struct {
	body   Body
	frame  Frame
	minute int64
}

type cachedLongitude struct {
	deg       float64
	fetchedAt time.Time
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider() *HorizonsProvider {
	return &HorizonsProvider{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: HorizonsAPIURL,
		cache:   make(map[lonKey]cachedLongitude),
	}
}

// WithBaseURL points the provider at a different endpoint (tests, mirrors).
func (p *HorizonsProvider) WithBaseURL(u string) *HorizonsProvider {
	p.baseURL = u
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Longitude implements Provider.
func (p *HorizonsProvider) Longitude(body Body, t time.Time, frame Frame) (float64, error) {
	info, err := body.Info()
	if err != nil {
		return 0, err
	}
	if body == Earth {
		return 0, fmt.Errorf("%w: earth is derived from the sun", ErrUnknownBody)
	}

	var center string
	switch frame {
	case Geocentric:
		center = "'500@399'"
	case Heliocentric:
		if body == Sun {
			return 0, fmt.Errorf("%w: sun has no heliocentric longitude", ErrUnsupportedFrame)
		}
		center = "'500@10'"
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedFrame, int(frame))
	}

	key := lonKey{body: body, frame: frame, minute: t.Unix() / 60}
	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < LongitudeCacheTTL {
		return cached.deg, nil
	}

	deg, err := p.queryLongitude(info.NAIFID, center, t)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", body, frame, err)
	}

	p.mu.Lock()
	p.cache[key] = cachedLongitude{deg: deg, fetchedAt: time.Now()}
	p.mu.Unlock()

	return deg, nil
}

// MoonPhase implements Provider as the Moon's geocentric elongation.
func (p *HorizonsProvider) MoonPhase(t time.Time) (float64, error) {
	moon, err := p.Longitude(Moon, t, Geocentric)
	if err != nil {
		return 0, err
	}
	sun, err := p.Longitude(Sun, t, Geocentric)
	if err != nil {
		return 0, err
	}
	return normalize360(moon - sun), nil
}

// InvalidateCache drops every cached longitude.
func (p *HorizonsProvider) InvalidateCache() {
	p.mu.Lock()
	p.cache = make(map[lonKey]cachedLongitude)
	p.mu.Unlock()
}

// queryLongitude makes a single-step observer-table request for the
// observer-centered ecliptic longitude (quantity 31).
func (p *HorizonsProvider) queryLongitude(naifID int, center string, t time.Time) (float64, error) {
	// Values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", naifID))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", center)
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(time.Minute))))
	params.Set("STEP_SIZE", "'1 m'")
	params.Set("QUANTITIES", "'31'") // 31=observer ecliptic lon/lat

	reqURL := p.baseURL + "?" + params.Encode()

	resp, err := p.client.Get(reqURL)
	if err != nil {
		return 0, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	return parseLongitudeResponse(body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseLongitudeResponse extracts the first longitude from the response.
func parseLongitudeResponse(body []byte) (float64, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("horizons: %s", strings.TrimSpace(resp.Error))
	}

	// The ephemeris rows sit between the $$SOE and $$EOE markers
	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return 0, fmt.Errorf("%w: missing data markers", ErrNoData)
	}

	for _, line := range strings.Split(resp.Result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lon, _, err := parseEclipticLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		return lon, nil
	}

	return 0, ErrNoData
}

// parseEclipticLine parses a single observer-table row for quantity 31:
//
//	2025-Dec-05 00:00 *   261.0321240  -0.0001046
//
// Fields: date, time, optional flags, ecliptic longitude, ecliptic latitude.
func parseEclipticLine(line string) (lon, lat float64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, 0, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	if _, err := parseHorizonsDateTime(fields[0] + " " + fields[1]); err != nil {
		return 0, 0, err
	}

	// Skip flag columns (*, C, m, Cm, ...) and take the first two numbers
	var values []float64
	for _, f := range fields[2:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
		if len(values) == 2 {
			break
		}
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("could not find ecliptic lon/lat values")
	}
	if !finite(values[0]) || !finite(values[1]) {
		return 0, 0, fmt.Errorf("non-finite ecliptic values")
	}

	return normalize360(values[0]), values[1], nil
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-Jan-02 15:04", s)
	if err == nil {
		return t.UTC(), nil
	}

	// Try with seconds
	t, err = time.Parse("2006-Jan-02 15:04:05", s)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
