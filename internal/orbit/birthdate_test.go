package orbit

import (
	"testing"
	"time"
)

func TestParseBirthDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)

	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{"date only defaults to noon", "1990-06-15", "", time.Date(1990, 6, 15, 12, 0, 0, 0, loc), false},
		{"explicit time", "1985-01-31", "07:45", time.Date(1985, 1, 31, 7, 45, 0, 0, loc), false},
		{"whitespace", " 2001-09-09 ", " 23:10 ", time.Date(2001, 9, 9, 23, 10, 0, 0, loc), false},
		{"bad date", "1990-13-40", "", time.Time{}, true},
		{"bad time", "1990-06-15", "25:99", time.Time{}, true},
		{"wrong layout", "15/06/1990", "", time.Time{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBirthDate(tc.date, tc.clock, loc)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseBirthDate_NilLocation(t *testing.T) {
	got, err := ParseBirthDate("2000-01-01", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Location() != time.Local {
		t.Errorf("location = %v, want Local", got.Location())
	}
}
