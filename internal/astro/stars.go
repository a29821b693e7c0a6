package astro

// StarRecord is a cataloged fixed star. LonDeg and LatDeg are the equatorial
// longitude and latitude (right ascension and declination, J2000) in degrees.
type StarRecord struct {
	Name   string  `json:"name" toml:"name"`
	LonDeg float64 `json:"ra" toml:"ra"`
	LatDeg float64 `json:"dec" toml:"dec"`
	Mag    float64 `json:"mag" toml:"mag"` // Apparent visual magnitude (lower = brighter)
}

// StarCatalog is an ordered, read-only list of stars.
type StarCatalog struct {
	Stars []StarRecord
}

// DefaultStarCatalog returns the built-in catalog: every star used by the
// zodiac figures plus the brightest stars off the ecliptic.
func DefaultStarCatalog() StarCatalog {
	return StarCatalog{
		Stars: defaultStars,
	}
}

// Brighter returns the stars with magnitude at or below limit, in catalog
// order.
func (c StarCatalog) Brighter(limit float64) StarCatalog {
	out := make([]StarRecord, 0, len(c.Stars))
	for _, s := range c.Stars {
		if s.Mag <= limit {
			out = append(out, s)
		}
	}
	return StarCatalog{Stars: out}
}

// Find returns the first star with the given name.
func (c StarCatalog) Find(name string) (StarRecord, bool) {
	for _, s := range c.Stars {
		if s.Name == name {
			return s, true
		}
	}
	return StarRecord{}, false
}

// defaultStars is grouped by zodiac constellation, then bright field stars.
var defaultStars = []StarRecord{
	// Aries
	{Name: "Hamal", LonDeg: 31.793, LatDeg: 23.463, Mag: 2.00},
	{Name: "Sheratan", LonDeg: 28.660, LatDeg: 20.808, Mag: 2.64},
	{Name: "Mesarthim", LonDeg: 28.383, LatDeg: 19.294, Mag: 3.88},
	{Name: "Bharani", LonDeg: 42.496, LatDeg: 27.260, Mag: 3.63},

	// Taurus
	{Name: "Aldebaran", LonDeg: 68.980, LatDeg: 16.509, Mag: 0.85},
	{Name: "Elnath", LonDeg: 81.573, LatDeg: 28.608, Mag: 1.65},
	{Name: "Alcyone", LonDeg: 56.871, LatDeg: 24.105, Mag: 2.87},
	{Name: "Tianguan", LonDeg: 84.411, LatDeg: 21.143, Mag: 3.00},
	{Name: "Ain", LonDeg: 67.154, LatDeg: 19.180, Mag: 3.53},
	{Name: "Hyadum I", LonDeg: 64.948, LatDeg: 15.628, Mag: 3.65},
	{Name: "Lambda Tau", LonDeg: 60.170, LatDeg: 12.490, Mag: 3.47},

	// Gemini
	{Name: "Pollux", LonDeg: 116.329, LatDeg: 28.026, Mag: 1.14},
	{Name: "Castor", LonDeg: 113.650, LatDeg: 31.889, Mag: 1.58},
	{Name: "Alhena", LonDeg: 99.428, LatDeg: 16.399, Mag: 1.93},
	{Name: "Tejat", LonDeg: 95.740, LatDeg: 22.513, Mag: 2.88},
	{Name: "Mebsuta", LonDeg: 100.983, LatDeg: 25.131, Mag: 3.06},
	{Name: "Propus", LonDeg: 93.719, LatDeg: 22.506, Mag: 3.28},
	{Name: "Wasat", LonDeg: 110.031, LatDeg: 21.982, Mag: 3.53},
	{Name: "Mekbuda", LonDeg: 106.027, LatDeg: 20.570, Mag: 3.79},

	// Cancer
	{Name: "Tarf", LonDeg: 124.129, LatDeg: 9.186, Mag: 3.52},
	{Name: "Asellus Australis", LonDeg: 131.171, LatDeg: 18.154, Mag: 3.94},
	{Name: "Iota Cnc", LonDeg: 131.674, LatDeg: 28.760, Mag: 4.02},
	{Name: "Acubens", LonDeg: 134.622, LatDeg: 11.858, Mag: 4.25},
	{Name: "Asellus Borealis", LonDeg: 130.821, LatDeg: 21.469, Mag: 4.66},

	// Leo
	{Name: "Regulus", LonDeg: 152.093, LatDeg: 11.967, Mag: 1.35},
	{Name: "Algieba", LonDeg: 154.993, LatDeg: 19.842, Mag: 2.08},
	{Name: "Denebola", LonDeg: 177.265, LatDeg: 14.572, Mag: 2.13},
	{Name: "Zosma", LonDeg: 168.527, LatDeg: 20.524, Mag: 2.56},
	{Name: "Ras Elased Australis", LonDeg: 146.463, LatDeg: 23.774, Mag: 2.98},
	{Name: "Chertan", LonDeg: 168.560, LatDeg: 15.430, Mag: 3.33},
	{Name: "Adhafera", LonDeg: 154.173, LatDeg: 23.417, Mag: 3.43},
	{Name: "Eta Leo", LonDeg: 151.833, LatDeg: 16.763, Mag: 3.49},
	{Name: "Rasalas", LonDeg: 148.191, LatDeg: 26.007, Mag: 3.88},

	// Virgo
	{Name: "Spica", LonDeg: 201.298, LatDeg: -11.161, Mag: 0.97},
	{Name: "Porrima", LonDeg: 190.415, LatDeg: -1.449, Mag: 2.74},
	{Name: "Vindemiatrix", LonDeg: 195.544, LatDeg: 10.959, Mag: 2.83},
	{Name: "Heze", LonDeg: 203.673, LatDeg: -0.596, Mag: 3.37},
	{Name: "Auva", LonDeg: 193.901, LatDeg: 3.397, Mag: 3.38},
	{Name: "Zavijava", LonDeg: 177.674, LatDeg: 1.765, Mag: 3.61},
	{Name: "Zaniah", LonDeg: 184.976, LatDeg: -0.667, Mag: 3.89},
	{Name: "Syrma", LonDeg: 214.004, LatDeg: -6.001, Mag: 4.08},

	// Libra
	{Name: "Zubeneschamali", LonDeg: 229.252, LatDeg: -9.383, Mag: 2.61},
	{Name: "Zubenelgenubi", LonDeg: 222.720, LatDeg: -16.042, Mag: 2.75},
	{Name: "Brachium", LonDeg: 226.018, LatDeg: -25.282, Mag: 3.29},
	{Name: "Zubenelhakrabi", LonDeg: 233.882, LatDeg: -14.789, Mag: 3.91},

	// Scorpius
	{Name: "Antares", LonDeg: 247.352, LatDeg: -26.432, Mag: 0.96},
	{Name: "Shaula", LonDeg: 263.402, LatDeg: -37.104, Mag: 1.63},
	{Name: "Sargas", LonDeg: 264.330, LatDeg: -42.998, Mag: 1.87},
	{Name: "Larawag", LonDeg: 252.541, LatDeg: -34.293, Mag: 2.29},
	{Name: "Dschubba", LonDeg: 240.083, LatDeg: -22.622, Mag: 2.32},
	{Name: "Girtab", LonDeg: 265.622, LatDeg: -39.030, Mag: 2.41},
	{Name: "Acrab", LonDeg: 241.359, LatDeg: -19.805, Mag: 2.62},
	{Name: "Alniyat", LonDeg: 248.971, LatDeg: -28.216, Mag: 2.82},
	{Name: "Fang", LonDeg: 239.713, LatDeg: -26.114, Mag: 2.89},
	{Name: "Mu1 Sco", LonDeg: 252.968, LatDeg: -38.048, Mag: 3.08},

	// Sagittarius
	{Name: "Kaus Australis", LonDeg: 276.043, LatDeg: -34.384, Mag: 1.85},
	{Name: "Nunki", LonDeg: 283.816, LatDeg: -26.297, Mag: 2.02},
	{Name: "Ascella", LonDeg: 285.653, LatDeg: -29.880, Mag: 2.60},
	{Name: "Kaus Media", LonDeg: 275.249, LatDeg: -29.828, Mag: 2.70},
	{Name: "Kaus Borealis", LonDeg: 276.993, LatDeg: -25.421, Mag: 2.81},
	{Name: "Alnasl", LonDeg: 271.452, LatDeg: -30.424, Mag: 2.99},
	{Name: "Phi Sgr", LonDeg: 281.414, LatDeg: -26.991, Mag: 3.17},
	{Name: "Tau Sgr", LonDeg: 286.735, LatDeg: -27.670, Mag: 3.32},

	// Capricornus
	{Name: "Deneb Algedi", LonDeg: 326.760, LatDeg: -16.127, Mag: 2.87},
	{Name: "Dabih", LonDeg: 305.253, LatDeg: -14.781, Mag: 3.08},
	{Name: "Algedi", LonDeg: 304.514, LatDeg: -12.545, Mag: 3.57},
	{Name: "Nashira", LonDeg: 325.023, LatDeg: -16.662, Mag: 3.68},
	{Name: "Zeta Cap", LonDeg: 321.667, LatDeg: -22.411, Mag: 3.74},
	{Name: "Theta Cap", LonDeg: 316.487, LatDeg: -17.233, Mag: 4.07},
	{Name: "Omega Cap", LonDeg: 311.524, LatDeg: -26.919, Mag: 4.11},

	// Aquarius
	{Name: "Sadalsuud", LonDeg: 322.890, LatDeg: -5.571, Mag: 2.91},
	{Name: "Sadalmelik", LonDeg: 331.446, LatDeg: -0.320, Mag: 2.96},
	{Name: "Skat", LonDeg: 343.662, LatDeg: -15.821, Mag: 3.27},
	{Name: "Lambda Aqr", LonDeg: 343.154, LatDeg: -7.580, Mag: 3.74},
	{Name: "Albali", LonDeg: 311.919, LatDeg: -9.496, Mag: 3.77},
	{Name: "Sadachbia", LonDeg: 335.414, LatDeg: -1.387, Mag: 3.84},
	{Name: "Ancha", LonDeg: 334.208, LatDeg: -7.783, Mag: 4.16},

	// Pisces
	{Name: "Alpherg", LonDeg: 22.871, LatDeg: 15.346, Mag: 3.62},
	{Name: "Gamma Psc", LonDeg: 349.291, LatDeg: 3.282, Mag: 3.69},
	{Name: "Alrescha", LonDeg: 30.512, LatDeg: 2.764, Mag: 3.82},
	{Name: "Omega Psc", LonDeg: 359.828, LatDeg: 6.863, Mag: 4.03},
	{Name: "Iota Psc", LonDeg: 354.987, LatDeg: 5.626, Mag: 4.13},
	{Name: "Omicron Psc", LonDeg: 26.349, LatDeg: 9.158, Mag: 4.26},
	{Name: "Epsilon Psc", LonDeg: 15.736, LatDeg: 7.890, Mag: 4.27},
	{Name: "Theta Psc", LonDeg: 351.992, LatDeg: 6.379, Mag: 4.27},
	{Name: "Delta Psc", LonDeg: 12.171, LatDeg: 7.585, Mag: 4.43},
	{Name: "Nu Psc", LonDeg: 25.358, LatDeg: 5.488, Mag: 4.44},
	{Name: "Fumalsamakah", LonDeg: 342.500, LatDeg: 3.820, Mag: 4.48},

	// Bright field stars
	{Name: "Sirius", LonDeg: 101.287, LatDeg: -16.716, Mag: -1.46},
	{Name: "Canopus", LonDeg: 95.988, LatDeg: -52.696, Mag: -0.74},
	{Name: "Arcturus", LonDeg: 213.915, LatDeg: 19.182, Mag: -0.05},
	{Name: "Vega", LonDeg: 279.235, LatDeg: 38.784, Mag: 0.03},
	{Name: "Capella", LonDeg: 79.172, LatDeg: 45.998, Mag: 0.08},
	{Name: "Rigel", LonDeg: 78.634, LatDeg: -8.202, Mag: 0.13},
	{Name: "Procyon", LonDeg: 114.826, LatDeg: 5.225, Mag: 0.34},
	{Name: "Achernar", LonDeg: 24.429, LatDeg: -57.237, Mag: 0.46},
	{Name: "Betelgeuse", LonDeg: 88.793, LatDeg: 7.407, Mag: 0.50},
	{Name: "Hadar", LonDeg: 210.956, LatDeg: -60.373, Mag: 0.61},
	{Name: "Altair", LonDeg: 297.696, LatDeg: 8.868, Mag: 0.76},
	{Name: "Acrux", LonDeg: 186.650, LatDeg: -63.099, Mag: 0.76},
	{Name: "Fomalhaut", LonDeg: 344.413, LatDeg: -29.622, Mag: 1.16},
	{Name: "Deneb", LonDeg: 310.358, LatDeg: 45.280, Mag: 1.25},
	{Name: "Mimosa", LonDeg: 191.930, LatDeg: -59.689, Mag: 1.25},
	{Name: "Bellatrix", LonDeg: 81.283, LatDeg: 6.350, Mag: 1.64},
	{Name: "Alnilam", LonDeg: 84.053, LatDeg: -1.202, Mag: 1.69},
	{Name: "Alnitak", LonDeg: 85.190, LatDeg: -1.943, Mag: 1.77},
	{Name: "Dubhe", LonDeg: 165.932, LatDeg: 61.751, Mag: 1.79},
	{Name: "Mirfak", LonDeg: 51.081, LatDeg: 49.861, Mag: 1.79},
	{Name: "Alkaid", LonDeg: 206.885, LatDeg: 49.313, Mag: 1.86},
	{Name: "Alphard", LonDeg: 141.897, LatDeg: -8.659, Mag: 2.00},
	{Name: "Polaris", LonDeg: 37.954, LatDeg: 89.264, Mag: 2.02},
	{Name: "Diphda", LonDeg: 10.897, LatDeg: -17.987, Mag: 2.04},
	{Name: "Alpheratz", LonDeg: 2.097, LatDeg: 29.091, Mag: 2.06},
	{Name: "Rasalhague", LonDeg: 263.734, LatDeg: 12.560, Mag: 2.08},
	{Name: "Algol", LonDeg: 47.042, LatDeg: 40.957, Mag: 2.12},
	{Name: "Mintaka", LonDeg: 83.002, LatDeg: -0.299, Mag: 2.23},
	{Name: "Enif", LonDeg: 326.046, LatDeg: 9.875, Mag: 2.39},
	{Name: "Scheat", LonDeg: 345.944, LatDeg: 28.083, Mag: 2.42},
	{Name: "Markab", LonDeg: 346.190, LatDeg: 15.205, Mag: 2.49},
}
