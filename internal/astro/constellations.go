package astro

// Constellation is a stick figure drawn between named catalog stars.
type Constellation struct {
	Name  string
	Sign  Sign
	Lines [][2]string
}

// ZodiacConstellations lists the twelve zodiac figures in sign order.
var ZodiacConstellations = []Constellation{
	{Name: "Aries", Sign: Aries, Lines: [][2]string{
		{"Hamal", "Sheratan"}, {"Sheratan", "Mesarthim"}, {"Hamal", "Bharani"},
	}},
	{Name: "Taurus", Sign: Taurus, Lines: [][2]string{
		{"Lambda Tau", "Hyadum I"}, {"Hyadum I", "Aldebaran"}, {"Aldebaran", "Tianguan"},
		{"Hyadum I", "Ain"}, {"Ain", "Elnath"}, {"Ain", "Alcyone"},
	}},
	{Name: "Gemini", Sign: Gemini, Lines: [][2]string{
		{"Castor", "Mebsuta"}, {"Mebsuta", "Tejat"}, {"Tejat", "Propus"},
		{"Pollux", "Wasat"}, {"Wasat", "Mekbuda"}, {"Mekbuda", "Alhena"}, {"Castor", "Pollux"},
	}},
	{Name: "Cancer", Sign: Cancer, Lines: [][2]string{
		{"Acubens", "Asellus Australis"}, {"Asellus Australis", "Asellus Borealis"},
		{"Asellus Borealis", "Iota Cnc"}, {"Asellus Australis", "Tarf"},
	}},
	{Name: "Leo", Sign: Leo, Lines: [][2]string{
		{"Regulus", "Eta Leo"}, {"Eta Leo", "Algieba"}, {"Algieba", "Adhafera"},
		{"Adhafera", "Rasalas"}, {"Rasalas", "Ras Elased Australis"}, {"Algieba", "Zosma"},
		{"Zosma", "Denebola"}, {"Denebola", "Chertan"}, {"Chertan", "Regulus"},
	}},
	{Name: "Virgo", Sign: Virgo, Lines: [][2]string{
		{"Zavijava", "Zaniah"}, {"Zaniah", "Porrima"}, {"Porrima", "Auva"},
		{"Auva", "Vindemiatrix"}, {"Porrima", "Spica"}, {"Spica", "Heze"}, {"Heze", "Syrma"},
	}},
	{Name: "Libra", Sign: Libra, Lines: [][2]string{
		{"Zubeneschamali", "Zubenelgenubi"}, {"Zubenelgenubi", "Brachium"},
		{"Zubeneschamali", "Zubenelhakrabi"}, {"Zubenelhakrabi", "Brachium"},
	}},
	{Name: "Scorpius", Sign: Scorpio, Lines: [][2]string{
		{"Acrab", "Dschubba"}, {"Dschubba", "Fang"}, {"Dschubba", "Antares"},
		{"Antares", "Alniyat"}, {"Alniyat", "Larawag"}, {"Larawag", "Mu1 Sco"},
		{"Mu1 Sco", "Sargas"}, {"Sargas", "Girtab"}, {"Girtab", "Shaula"},
	}},
	{Name: "Sagittarius", Sign: Sagittarius, Lines: [][2]string{
		{"Alnasl", "Kaus Media"}, {"Kaus Media", "Kaus Australis"}, {"Kaus Australis", "Alnasl"},
		{"Kaus Media", "Kaus Borealis"}, {"Kaus Borealis", "Phi Sgr"}, {"Phi Sgr", "Nunki"},
		{"Nunki", "Tau Sgr"}, {"Tau Sgr", "Ascella"}, {"Ascella", "Phi Sgr"},
	}},
	{Name: "Capricornus", Sign: Capricorn, Lines: [][2]string{
		{"Algedi", "Dabih"}, {"Dabih", "Omega Cap"}, {"Omega Cap", "Zeta Cap"},
		{"Zeta Cap", "Deneb Algedi"}, {"Deneb Algedi", "Nashira"}, {"Nashira", "Theta Cap"},
		{"Theta Cap", "Dabih"},
	}},
	{Name: "Aquarius", Sign: Aquarius, Lines: [][2]string{
		{"Albali", "Sadalsuud"}, {"Sadalsuud", "Sadalmelik"}, {"Sadalmelik", "Sadachbia"},
		{"Sadalmelik", "Ancha"}, {"Ancha", "Lambda Aqr"}, {"Lambda Aqr", "Skat"},
	}},
	{Name: "Pisces", Sign: Pisces, Lines: [][2]string{
		{"Alpherg", "Omicron Psc"}, {"Omicron Psc", "Alrescha"}, {"Alrescha", "Nu Psc"},
		{"Nu Psc", "Epsilon Psc"}, {"Epsilon Psc", "Delta Psc"}, {"Delta Psc", "Omega Psc"},
		{"Omega Psc", "Iota Psc"}, {"Iota Psc", "Theta Psc"}, {"Theta Psc", "Gamma Psc"},
		{"Gamma Psc", "Fumalsamakah"},
	}},
}
