package astro

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCatalog = `
[[star]]
name = "Regulus"
ra = 152.093
dec = 11.967
mag = 1.35

[[star]]
name = "Spica"
ra = 201.298
dec = -11.161
mag = 0.97
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	want := []StarRecord{
		{Name: "Regulus", LonDeg: 152.093, LatDeg: 11.967, Mag: 1.35},
		{Name: "Spica", LonDeg: 201.298, LatDeg: -11.161, Mag: 0.97},
	}
	if diff := cmp.Diff(want, cat.Stars); diff != "" {
		t.Errorf("stars mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "latitude above pole",
			data:    "[[star]]\nname = \"X\"\nra = 10.0\ndec = 91.0\nmag = 1.0\n",
			wantErr: ErrInvalidStar,
		},
		{
			name:    "latitude below pole",
			data:    "[[star]]\nname = \"Y\"\nra = 10.0\ndec = -90.5\nmag = 1.0\n",
			wantErr: ErrInvalidStar,
		},
		{
			name:    "non-finite longitude",
			data:    "[[star]]\nname = \"Z\"\nra = nan\ndec = 0.0\nmag = 1.0\n",
			wantErr: ErrInvalidStar,
		},
		{
			name:    "infinite magnitude",
			data:    "[[star]]\nname = \"W\"\nra = 1.0\ndec = 0.0\nmag = inf\n",
			wantErr: ErrInvalidStar,
		},
		{
			name: "malformed toml",
			data: "[[star]\nname = ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	def, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog(\"\"): %v", err)
	}
	if len(def.Stars) != len(DefaultStarCatalog().Stars) {
		t.Error("empty path should return the built-in catalog")
	}

	path := filepath.Join(t.TempDir(), "stars.toml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(cat.Stars) != 2 {
		t.Errorf("got %d stars, want 2", len(cat.Stars))
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
