package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
)

const (
	// Wall height shown, in radii either side of the ecliptic.
	// 0.6 radii is about 31° of ecliptic latitude.
	wallVRange = 0.6

	// Degrees of longitude per pan step.
	panStep = 15.0

	// Star glyphs by magnitude
	glyphStarBright = '✶' // mag < 1.5
	glyphStarMedium = '✸' // mag 1.5-3.0
	glyphStarDim    = '·' // mag >= 3.0

	glyphFigure   = '∙'
	glyphBoundary = '│'
	glyphEcliptic = '─'

	// Star colors (grayscale to not compete with bodies)
	colorStarBright = "255"
	colorStarMedium = "250"
	colorStarDim    = "244"
	colorFigure     = "60"
	colorBoundary   = "#7B2CBF"
	colorSign       = "#9D4EDD"
	colorEcliptic   = "238"
	colorBody       = "220"
	colorLabel      = "249"
)

// StarWallModel renders the star wall unrolled flat: ecliptic longitude
// across, increasing to the left, ecliptic latitude up.
type StarWallModel struct {
	width  int
	height int

	stars   []astro.PlacedStar
	figures []astro.PlacedConstellation

	snapshot  orbit.Snapshot
	sidereal  bool
	labels    LabelMode
	showStars bool
	centerLon float64 // degrees at the middle column
}

// NewStarWallModel projects the catalog once. Stars are always placed; a
// figure naming a star the catalog lacks drops every figure and is reported.
func NewStarWallModel(catalog astro.StarCatalog) (StarWallModel, error) {
	m := StarWallModel{
		stars:     astro.PlaceStars(catalog, 1),
		labels:    LabelBodies,
		showStars: true,
		centerLon: 180,
	}
	figures, err := astro.PlaceConstellations(catalog, 1)
	if err != nil {
		return m, err
	}
	m.figures = figures
	return m, nil
}

// SetSize updates the viewport size.
func (m StarWallModel) SetSize(width, height int) StarWallModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with the latest frame.
func (m StarWallModel) UpdateData(snap orbit.Snapshot, sidereal bool, labels LabelMode) StarWallModel {
	m.snapshot = snap
	m.sidereal = sidereal
	m.labels = labels
	return m
}

// Update handles the keys owned by this view.
func (m StarWallModel) Update(msg tea.Msg, keys KeyMap) StarWallModel {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch {
	case key.Matches(km, keys.PanLeft):
		m.centerLon = math.Mod(m.centerLon+panStep, 360)
	case key.Matches(km, keys.PanRight):
		m.centerLon = math.Mod(m.centerLon-panStep+360, 360)
	case key.Matches(km, keys.Stars):
		m.showStars = !m.showStars
	}
	return m
}

// CenterLon returns the longitude (degrees) at the middle of the view.
func (m StarWallModel) CenterLon() float64 {
	return m.centerLon
}

// View renders the wall and its status line.
func (m StarWallModel) View() string {
	if m.width < 40 || m.height < 8 {
		return "Terminal too small for star wall view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderCanvas(), m.renderStatus())
}

// column maps an ecliptic longitude in degrees to a screen column.
func (m StarWallModel) column(lonDeg float64, width int) int {
	d := orbit.NormalizeSigned((lonDeg - m.centerLon) * math.Pi / 180)
	x := width/2 - int(math.Round(d/(2*math.Pi)*float64(width)))
	return ((x % width) + width) % width
}

// row maps a wall height in radii to a screen row; ok is false off screen.
func row(v float64, height int) (int, bool) {
	if v > wallVRange || v < -wallVRange {
		return 0, false
	}
	y := int(math.Round((wallVRange - v) / (2 * wallVRange) * float64(height-1)))
	return y, true
}

func (m StarWallModel) renderCanvas() string {
	canvas, colors := m.layout()

	var sb strings.Builder
	for y, line := range canvas {
		for x, ch := range line {
			if ch == ' ' {
				sb.WriteRune(ch)
				continue
			}
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			sb.WriteString(style.Render(string(ch)))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// layout draws the wall into a rune grid with a color per cell.
func (m StarWallModel) layout() ([][]rune, [][]lipgloss.Color) {
	canvasH := m.height - 2
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	canvas := make([][]rune, canvasH)
	colors := make([][]lipgloss.Color, canvasH)
	for y := range canvas {
		canvas[y] = make([]rune, canvasW)
		colors[y] = make([]lipgloss.Color, canvasW)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}
	put := func(x, y int, r rune, c lipgloss.Color) {
		if x >= 0 && x < canvasW && y >= 0 && y < canvasH {
			canvas[y][x] = r
			colors[y][x] = c
		}
	}

	eclY, _ := row(0, canvasH)
	for x := 0; x < canvasW; x++ {
		put(x, eclY, glyphEcliptic, colorEcliptic)
	}

	// Zodiac boundaries, with each sign's glyph mid-span on the top row
	bounds := astro.SignBoundaries(m.sidereal, m.zodiacTime())
	for s, lon := range bounds {
		x := m.column(lon, canvasW)
		for y := 1; y < canvasH; y++ {
			if canvas[y][x] == ' ' {
				put(x, y, glyphBoundary, colorBoundary)
			}
		}
		put(m.column(lon+15, canvasW), 0, astro.Sign(s).Glyph(), colorSign)
	}

	if m.showStars {
		for _, fig := range m.figures {
			for _, seg := range fig.Segments {
				m.drawSegment(canvasW, canvasH, seg, put)
			}
		}
		for _, s := range m.stars {
			p := astro.Unroll(s.Pos, 1)
			y, ok := row(p.V, canvasH)
			if !ok {
				continue
			}
			x := m.column(p.U*360, canvasW)
			glyph, color := starGlyph(s.Star.Mag)
			put(x, y, glyph, color)
			if m.labels == LabelAll && s.Star.Mag < 1.5 {
				label(canvas, colors, x+2, y, s.Star.Name, colorLabel)
			}
		}
	}

	// Bodies ride the ecliptic; an angle a sits at longitude -a
	for _, b := range m.snapshot.Visible() {
		a, ok := m.snapshot.BodyAngles[b]
		if !ok {
			continue
		}
		x := m.column(-a*180/math.Pi, canvasW)
		put(x, eclY, b.Glyph(), colorBody)
		if m.labels != LabelNone {
			label(canvas, colors, x-1, eclY+1, b.String(), colorLabel)
		}
	}
	return canvas, colors
}

// drawSegment rasterizes a figure line with Bresenham's algorithm. Lines
// that would wrap around the seam of the view are skipped.
func (m StarWallModel) drawSegment(w, h int, seg astro.PlacedSegment, put func(x, y int, r rune, c lipgloss.Color)) {
	from := astro.Unroll(seg.From, 1)
	to := astro.Unroll(seg.To, 1)
	y0, ok0 := row(from.V, h)
	y1, ok1 := row(to.V, h)
	if !ok0 || !ok1 {
		return
	}
	x0 := m.column(from.U*360, w)
	x1 := m.column(to.U*360, w)
	if abs(x1-x0) > w/2 {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		put(x0, y0, glyphFigure, colorFigure)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func label(canvas [][]rune, colors [][]lipgloss.Color, x, y int, text string, c lipgloss.Color) {
	if y < 0 || y >= len(canvas) {
		return
	}
	i := 0
	for _, r := range text {
		col := x + i
		i++
		if col < 0 || col >= len(canvas[y]) {
			continue
		}
		if canvas[y][col] == ' ' || canvas[y][col] == glyphEcliptic || canvas[y][col] == glyphBoundary {
			canvas[y][col] = r
			colors[y][col] = c
		}
	}
}

func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}

func (m StarWallModel) zodiacTime() time.Time {
	if m.snapshot.Time.IsZero() {
		return time.Now()
	}
	return m.snapshot.Time
}

func (m StarWallModel) renderStatus() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	zodiac := "tropical"
	if m.sidereal {
		zodiac = fmt.Sprintf("sidereal (ayanamsa %.2f°)", astro.Ayanamsa(m.zodiacTime()))
	}
	stars := "off"
	if m.showStars {
		stars = fmt.Sprintf("%d", len(m.stars))
	}

	return dimStyle.Render("Center:") + valueStyle.Render(fmt.Sprintf("%.0f°", m.centerLon)) + "  " +
		dimStyle.Render("Zodiac:") + valueStyle.Render(zodiac) + "  " +
		dimStyle.Render("Stars:") + valueStyle.Render(stars) + "  " +
		dimStyle.Render("Labels:") + valueStyle.Render(m.labels.String())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
