package astro

import (
	"errors"
	"fmt"
	"math"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrInvalidStar is returned for a catalog entry that cannot be placed.
var ErrInvalidStar = errors.New("invalid star")

// catalogFile is the on-disk layout of a star catalog:
//
//	[[star]]
//	name = "Regulus"
//	ra = 152.093
//	dec = 11.967
//	mag = 1.35
type catalogFile struct {
	Stars []StarRecord `toml:"star"`
}

// LoadCatalog reads a TOML star catalog. An empty path returns the built-in
// catalog.
func LoadCatalog(path string) (StarCatalog, error) {
	if path == "" {
		return DefaultStarCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return StarCatalog{}, fmt.Errorf("reading star catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML star catalog.
func ParseCatalog(data []byte) (StarCatalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return StarCatalog{}, fmt.Errorf("parsing star catalog: %w", err)
	}
	for i, s := range f.Stars {
		if err := s.Validate(); err != nil {
			return StarCatalog{}, fmt.Errorf("star %d: %w", i, err)
		}
	}
	return StarCatalog{Stars: f.Stars}, nil
}

// Validate checks that a record has finite values and a latitude in
// [-90, 90].
func (s StarRecord) Validate() error {
	for _, v := range []float64{s.LonDeg, s.LatDeg, s.Mag} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q has a non-finite value", ErrInvalidStar, s.Name)
		}
	}
	if s.LatDeg < -90 || s.LatDeg > 90 {
		return fmt.Errorf("%w: %q latitude %.3f out of range", ErrInvalidStar, s.Name, s.LatDeg)
	}
	return nil
}
