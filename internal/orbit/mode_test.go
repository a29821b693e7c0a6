package orbit

import (
	"errors"
	"testing"

	"github.com/litescript/ls-orrery/internal/ephem"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"geocentric", GeocentricDrift, false},
		{"helio", HeliocentricDrift, false},
		{"live", Live, false},
		{"Aligned", Aligned, false},
		{"birthdate", BirthDate, false},
		{"clock24h", Clock24h, false},
		{"12h", Clock12h, false},
		{"", 0, true},
		{"sideways", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Errorf("ParseMode(%q) err = %v, want ErrUnknownMode", tc.input, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseMode(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
			}
		})
	}
}

func TestModeRoundTripNames(t *testing.T) {
	for _, m := range Modes {
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), parsed, err)
		}
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("Mode(42).String() = %q", Mode(42).String())
	}
	if _, err := Mode(-1).MarshalText(); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("MarshalText err = %v", err)
	}
}

func TestModeDrift(t *testing.T) {
	tests := []struct {
		mode      Mode
		drift     bool
		frame     ephem.Frame
		forceable bool
	}{
		{GeocentricDrift, true, ephem.Geocentric, true},
		{HeliocentricDrift, true, ephem.Heliocentric, true},
		{Clock12h, true, ephem.Heliocentric, true},
		{Live, false, 0, false},
		{Aligned, false, 0, false},
		{BirthDate, false, 0, false},
		{Clock24h, false, 0, false},
	}
	for _, tc := range tests {
		if tc.mode.Drift() != tc.drift {
			t.Errorf("%v.Drift() = %v", tc.mode, tc.mode.Drift())
		}
		f, ok := tc.mode.DriftFrame()
		if ok != tc.forceable || (ok && f != tc.frame) {
			t.Errorf("%v.DriftFrame() = %v, %v", tc.mode, f, ok)
		}
	}
}
