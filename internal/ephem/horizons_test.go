package ephem

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestHorizonsProvider_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	provider := NewHorizonsProvider()

	lon, err := provider.Longitude(Mars, time.Now(), Geocentric)
	if err != nil {
		t.Fatalf("Longitude failed: %v", err)
	}
	t.Logf("Mars geocentric longitude: %.4f°", lon)
}

func TestParseEclipticLine(t *testing.T) {
	tests := []struct {
		line    string
		wantLon float64
		wantLat float64
		wantErr bool
	}{
		{
			line:    "2025-Dec-05 00:00 *   261.0321240  -0.0001046",
			wantLon: 261.0321240,
			wantLat: -0.0001046,
		},
		{
			line:    "2025-Dec-05 01:00 Cm  12.5000000   1.2500000",
			wantLon: 12.5,
			wantLat: 1.25,
		},
		{
			line:    "2025-Dec-05 02:00     359.9990000   0.0000000",
			wantLon: 359.999,
			wantLat: 0,
		},
		{
			line:    "2025-Dec-05 02:00:30  100.0  -2.0",
			wantLon: 100,
			wantLat: -2,
		},
		{
			line:    "2025-Dec-05 03:00 *   n.a.  n.a.",
			wantErr: true,
		},
		{
			line:    "garbage",
			wantErr: true,
		},
		{
			line:    "not-a-date 00:00 10.0 1.0",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			lon, lat, err := parseEclipticLine(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(lon-tc.wantLon) > 1e-9 || math.Abs(lat-tc.wantLat) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", lon, lat, tc.wantLon, tc.wantLat)
			}
		})
	}
}

const horizonsFixture = `{
  "signature": {"version": "1.2", "source": "NASA/JPL Horizons API"},
  "result": "*******************************************************************************\n Date__(UT)__HR:MN     ObsEcLon    ObsEcLat\n*******************************************************************************\n$$SOE\n 2025-Dec-05 00:00 *   261.0321240  -0.0001046\n 2025-Dec-05 00:01 *   261.0328200  -0.0001046\n$$EOE\n"
}`

func TestParseLongitudeResponse(t *testing.T) {
	lon, err := parseLongitudeResponse([]byte(horizonsFixture))
	if err != nil {
		t.Fatalf("parseLongitudeResponse: %v", err)
	}
	if math.Abs(lon-261.032124) > 1e-9 {
		t.Errorf("lon = %v, want 261.032124", lon)
	}

	_, err = parseLongitudeResponse([]byte(`{"result": "no markers here"}`))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("missing markers: err = %v, want ErrNoData", err)
	}

	_, err = parseLongitudeResponse([]byte(`{"error": "Cannot interpret date"}`))
	if err == nil || !strings.Contains(err.Error(), "Cannot interpret date") {
		t.Errorf("API error not surfaced: %v", err)
	}

	if _, err := parseLongitudeResponse([]byte(`{not json`)); err == nil {
		t.Error("expected JSON error")
	}
}

func TestHorizonsProvider_Query(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if q.Get("QUANTITIES") != "'31'" {
			t.Errorf("QUANTITIES = %q", q.Get("QUANTITIES"))
		}
		var center string
		switch q.Get("CENTER") {
		case "'500@399'":
			center = "geo"
		case "'500@10'":
			center = "helio"
		default:
			t.Errorf("unexpected CENTER %q", q.Get("CENTER"))
		}
		lon := 100.0
		if q.Get("COMMAND") == "'10'" {
			lon = 40.0
		}
		if center == "helio" {
			lon += 5
		}
		fmt.Fprintf(w, `{"result": "$$SOE\n 2025-Dec-05 00:00 *   %.7f   0.0000000\n$$EOE\n"}`, lon)
	}))
	defer srv.Close()

	p := NewHorizonsProvider().WithBaseURL(srv.URL)
	when := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)

	got, err := p.Longitude(Mars, when, Geocentric)
	if err != nil || got != 100 {
		t.Fatalf("Mars geo = %v, %v", got, err)
	}
	got, err = p.Longitude(Mars, when, Heliocentric)
	if err != nil || got != 105 {
		t.Fatalf("Mars helio = %v, %v", got, err)
	}

	// Cached within the same minute.
	before := hits.Load()
	if _, err := p.Longitude(Mars, when.Add(20*time.Second), Geocentric); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != before {
		t.Error("expected cache hit for the same minute")
	}

	phase, err := p.MoonPhase(when)
	if err != nil {
		t.Fatal(err)
	}
	if phase != 60 {
		t.Errorf("MoonPhase = %v, want 60", phase)
	}

	if _, err := p.Longitude(Sun, when, Heliocentric); !errors.Is(err, ErrUnsupportedFrame) {
		t.Errorf("Sun helio err = %v", err)
	}
	if _, err := p.Longitude(Earth, when, Geocentric); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Earth err = %v", err)
	}

	p.InvalidateCache()
	before = hits.Load()
	if _, err := p.Longitude(Mars, when, Geocentric); err != nil {
		t.Fatal(err)
	}
	if hits.Load() == before {
		t.Error("expected a request after InvalidateCache")
	}
}

func TestHorizonsProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHorizonsProvider().WithBaseURL(srv.URL)
	_, err := p.Longitude(Venus, time.Now(), Geocentric)
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want status 503", err)
	}
}
