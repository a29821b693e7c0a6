package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// aspect compensates for terminal cells being about twice as tall as wide.
const aspect = 0.5

// OrreryModel renders the top-down ring diagram.
type OrreryModel struct {
	width    int
	height   int
	snapshot orbit.Snapshot
	sidereal bool
	labels   LabelMode
}

// NewOrreryModel creates a new orrery view model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{labels: LabelBodies}
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with the latest frame.
func (m OrreryModel) UpdateData(snap orbit.Snapshot, sidereal bool, labels LabelMode) OrreryModel {
	m.snapshot = snap
	m.sidereal = sidereal
	m.labels = labels
	return m
}

// View renders the diagram and its HUD.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y int
	body ephem.Body
}

// ringRadii returns the radius in columns of each visible body's ring,
// innermost first, leaving the outermost band for the zodiac.
func ringRadii(n int, maxR float64) []float64 {
	radii := make([]float64, n)
	if n == 0 {
		return radii
	}
	inner := maxR * 0.15
	step := (maxR*0.85 - inner) / float64(max(n-1, 1))
	for i := range radii {
		radii[i] = inner + float64(i)*step
	}
	return radii
}

// ringPoint places angle a (radians) on a ring of radius r around (cx, cy).
// Positive angles turn clockwise on screen.
func ringPoint(cx, cy int, r, a float64) (int, int) {
	x := cx + int(math.Round(r*math.Cos(a)))
	y := cy + int(math.Round(r*math.Sin(a)*aspect))
	return x, y
}

func (m OrreryModel) buildCanvas() string {
	return m.renderGrid(m.layout())
}

// layout draws the diagram into a rune grid.
func (m OrreryModel) layout() [][]rune {
	canvasH := m.height - 3
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	cx := canvasW / 2
	cy := canvasH / 2
	maxR := math.Min(float64(cx)-2, float64(cy-1)/aspect)

	visible := m.snapshot.Visible()
	radii := ringRadii(len(visible), maxR)
	for _, r := range radii {
		drawCircle(grid, cx, cy, r)
	}

	m.drawZodiac(grid, cx, cy, maxR)

	var positions []bodyPos
	for i, b := range visible {
		a, ok := m.snapshot.BodyAngles[b]
		if !ok {
			continue
		}
		x, y := ringPoint(cx, cy, radii[i], a)
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			continue
		}
		grid[y][x] = b.Glyph()
		positions = append(positions, bodyPos{x: x, y: y, body: b})
	}

	// Hub last so it always shows
	hub := ephem.Earth
	if m.snapshot.Frame == ephem.Heliocentric {
		hub = ephem.Sun
	}
	grid[cy][cx] = hub.Glyph()

	if m.labels != LabelNone {
		for _, p := range positions {
			writeLabel(grid, p.x+2, p.y, p.body.String())
		}
	}
	return grid
}

// drawZodiac puts the sign glyphs on the outermost band, each at the middle
// of its 30° span.
func (m OrreryModel) drawZodiac(grid [][]rune, cx, cy int, maxR float64) {
	bounds := astro.SignBoundaries(m.sidereal, m.zodiacTime())
	r := maxR
	for s, lon := range bounds {
		a := -(lon + 15) * math.Pi / 180
		x, y := ringPoint(cx, cy, r, a)
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			continue
		}
		grid[y][x] = astro.Sign(s).Glyph()
	}
}

func (m OrreryModel) zodiacTime() time.Time {
	if m.snapshot.Time.IsZero() {
		return time.Now()
	}
	return m.snapshot.Time
}

func drawCircle(grid [][]rune, cx, cy int, r float64) {
	if r < 1 {
		return
	}

	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x, y := ringPoint(cx, cy, r, theta)
		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

// writeLabel writes text starting at (x, y) over blanks and ring dots only.
func writeLabel(grid [][]rune, x, y int, text string) {
	if y < 0 || y >= len(grid) {
		return
	}
	row := grid[y]
	i := 0
	for _, r := range text {
		col := x + i
		i++
		if col < 0 {
			continue
		}
		if col >= len(row) {
			return
		}
		if row[col] == ' ' || row[col] == '·' {
			row[col] = r
		}
	}
}

func (m OrreryModel) renderGrid(grid [][]rune) string {
	var b strings.Builder

	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	moonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	earthStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	giantStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	heldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	signStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	held := make(map[rune]bool, len(m.snapshot.Held))
	for _, body := range m.snapshot.Held {
		held[body.Glyph()] = true
	}

	for _, row := range grid {
		for _, ch := range row {
			var style lipgloss.Style
			switch {
			case ch == ' ':
				b.WriteRune(ch)
				continue
			case ch == '·':
				style = ringStyle
			case held[ch]:
				style = heldStyle
			case ch == '☉':
				style = sunStyle
			case ch == '☾':
				style = moonStyle
			case ch == '⊕':
				style = earthStyle
			case ch == '♃' || ch == '♄':
				style = giantStyle
			case ch == '☿' || ch == '♀' || ch == '♂':
				style = planetStyle
			case ch >= '♈' && ch <= '♓':
				style = signStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	snap := m.snapshot
	b.WriteString(headerStyle.Render(fmt.Sprintf("%c %s", phaseGlyph(snap.MoonPhaseAngle), modeTitle(snap.Mode))))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Frame:"))
	b.WriteString(valueStyle.Render(snap.Frame.String()))
	if !snap.Time.IsZero() {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("Time:"))
		b.WriteString(valueStyle.Render(snap.Time.Format("2006-01-02 15:04:05 MST")))
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("Moon:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%.0f°)", phaseName(snap.MoonPhaseAngle), normDeg(snap.MoonPhaseAngle))))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zodiac:"))
	if m.sidereal {
		b.WriteString(valueStyle.Render(fmt.Sprintf("sidereal (ayanamsa %.2f°)", astro.Ayanamsa(m.zodiacTime()))))
	} else {
		b.WriteString(valueStyle.Render("tropical"))
	}
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.labels.String()))

	if len(snap.Held) > 0 {
		names := make([]string, len(snap.Held))
		for i, body := range snap.Held {
			names[i] = body.String()
		}
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("Held: " + strings.Join(names, ", ")))
	}

	return b.String()
}

func modeTitle(m orbit.Mode) string {
	switch m {
	case orbit.GeocentricDrift:
		return "Geocentric drift"
	case orbit.HeliocentricDrift:
		return "Heliocentric drift"
	case orbit.Live:
		return "Live sky"
	case orbit.Aligned:
		return "Aligned"
	case orbit.BirthDate:
		return "Birth date"
	case orbit.Clock24h:
		return "24h clock"
	case orbit.Clock12h:
		return "12h clock"
	default:
		return m.String()
	}
}

var phaseNames = [8]string{
	"New", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

var phaseGlyphs = [8]rune{'●', '◔', '◑', '◕', '○', '◕', '◐', '◔'}

// phaseIndex buckets the Moon's elongation (radians) into eight named
// phases, each centered on its nominal angle.
func phaseIndex(rad float64) int {
	return int(math.Floor(normDeg(rad)/45+0.5)) % 8
}

func phaseName(rad float64) string {
	return phaseNames[phaseIndex(rad)]
}

func phaseGlyph(rad float64) rune {
	return phaseGlyphs[phaseIndex(rad)]
}

// normDeg converts radians to degrees in [0, 360).
func normDeg(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}
