// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrrery ViewMode = iota
	ViewStarWall
)

const numViews = 2

// LabelMode controls which names are drawn next to glyphs.
type LabelMode int

const (
	LabelNone   LabelMode = iota // No labels
	LabelBodies                  // Body names only
	LabelAll                     // Bodies and bright stars
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelBodies:
		return "bodies"
	case LabelAll:
		return "all"
	default:
		return "?"
	}
}

func (l LabelMode) next() LabelMode {
	return (l + 1) % 3
}

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the orrery: every one advances the controller by
	// the time elapsed since the previous one.
	AnimTickMsg time.Time

	// ConfigReloadMsg carries a configuration reloaded from disk.
	ConfigReloadMsg struct {
		Config config.Config
		Err    error
	}
)

// animInterval is the render tick period when none is configured.
const animInterval = 80 * time.Millisecond

// Options configures the root model. Only the controller is required.
type Options struct {
	State    *state.Manager // receives every frame when set
	Catalog  astro.StarCatalog
	Sidereal bool
	Dial     orbit.Mode // Clock24h or Clock12h
	Interval time.Duration
	Logger   *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctrl  *orbit.Controller
	state *state.Manager
	log   *logging.Logger
	keys  KeyMap

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int // Animation tick for shimmer effects
	interval  time.Duration
	lastTick  time.Time
	paused    bool
	sidereal  bool
	dial      orbit.Mode
	labels    LabelMode

	// Sub-models
	orrery   OrreryModel
	starWall StarWallModel

	// Latest frame
	snapshot orbit.Snapshot
}

// New creates a new root UI model.
func New(ctrl *orbit.Controller, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("ui")

	dial := opts.Dial
	if dial != orbit.Clock12h {
		dial = orbit.Clock24h
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = animInterval
	}
	catalog := opts.Catalog
	if len(catalog.Stars) == 0 {
		catalog = astro.DefaultStarCatalog()
	}

	wall, err := NewStarWallModel(catalog)
	if err != nil {
		log.Warn("constellation figures unavailable: %v", err)
	}

	m := Model{
		ctrl:     ctrl,
		state:    opts.State,
		log:      log,
		keys:     DefaultKeyMap(),
		viewMode: ViewOrrery,
		interval: interval,
		sidereal: opts.Sidereal,
		dial:     dial,
		labels:   LabelBodies,
		orrery:   NewOrreryModel(),
		starWall: wall,
	}
	if err != nil {
		m.statusMsg = "constellation figures unavailable"
	}
	m.syncViews()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, tabs and footer ~3 lines
		contentHeight := msg.Height - 15
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.starWall = m.starWall.SetSize(msg.Width, contentHeight)

	case AnimTickMsg:
		cmds = append(cmds, m.animTickCmd())
		m.animTick++
		m.advance(time.Time(msg))

	case ConfigReloadMsg:
		m.applyConfig(msg.Config, msg.Err)
	}

	return m, tea.Batch(cmds...)
}

// advance runs one controller tick for a frame arriving at t.
func (m *Model) advance(t time.Time) {
	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = t.Sub(m.lastTick).Seconds()
	}
	m.lastTick = t
	if m.paused {
		dt = 0
	}

	m.snapshot = m.ctrl.Tick(dt)
	if m.state != nil {
		m.state.Publish(m.snapshot)
	}
	m.syncViews()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Geocentric):
		m.setMode(orbit.GeocentricDrift)
	case key.Matches(msg, m.keys.Heliocentric):
		m.setMode(orbit.HeliocentricDrift)
	case key.Matches(msg, m.keys.Live):
		m.setMode(orbit.Live)
	case key.Matches(msg, m.keys.Aligned):
		m.setMode(orbit.Aligned)
	case key.Matches(msg, m.keys.BirthDate):
		m.setMode(orbit.BirthDate)
	case key.Matches(msg, m.keys.Clock24h):
		m.dial = orbit.Clock24h
		m.setMode(orbit.Clock24h)
	case key.Matches(msg, m.keys.Clock12h):
		m.dial = orbit.Clock12h
		m.setMode(orbit.Clock12h)

	case key.Matches(msg, m.keys.Dial):
		if m.dial == orbit.Clock24h {
			m.dial = orbit.Clock12h
		} else {
			m.dial = orbit.Clock24h
		}
		if m.ctrl.Mode() == orbit.Clock24h || m.ctrl.Mode() == orbit.Clock12h {
			m.setMode(m.dial)
		} else {
			m.statusMsg = "dial: " + dialName(m.dial)
		}

	case key.Matches(msg, m.keys.Frame):
		next := ephem.Heliocentric
		if m.ctrl.Frame() == ephem.Heliocentric {
			next = ephem.Geocentric
		}
		if err := m.ctrl.SetFrame(next); err != nil {
			m.statusMsg = err.Error()
			break
		}
		if m.ctrl.Frame() != next {
			m.statusMsg = "frame is fixed in drift modes"
			break
		}
		m.statusMsg = "frame: " + next.String()

	case key.Matches(msg, m.keys.Sidereal):
		m.sidereal = !m.sidereal
		if m.sidereal {
			m.statusMsg = "zodiac: sidereal"
		} else {
			m.statusMsg = "zodiac: tropical"
		}

	case key.Matches(msg, m.keys.Labels):
		m.labels = m.labels.next()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.statusMsg = "reset"

	case key.Matches(msg, m.keys.View):
		m.viewMode = (m.viewMode + 1) % numViews

	default:
		if m.viewMode == ViewStarWall {
			m.starWall = m.starWall.Update(msg, m.keys)
		}
	}
	m.syncViews()
}

func (m *Model) setMode(mode orbit.Mode) {
	if err := m.ctrl.SetMode(mode); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = "mode: " + mode.String()
}

func (m *Model) applyConfig(cfg config.Config, err error) {
	if err != nil {
		m.log.Warn("config reload rejected: %v", err)
		m.statusMsg = "config reload failed: " + err.Error()
		return
	}
	if err := cfg.Apply(m.ctrl); err != nil {
		m.log.Warn("config reload rejected: %v", err)
		m.statusMsg = "config reload failed: " + err.Error()
		return
	}
	m.sidereal = cfg.Sidereal
	if cfg.ClockDial == "12h" {
		m.dial = orbit.Clock12h
	} else {
		m.dial = orbit.Clock24h
	}
	m.log.Info("config reloaded: mode=%s sidereal=%v", cfg.Mode, cfg.Sidereal)
	m.statusMsg = "config reloaded"
	m.syncViews()
}

// syncViews pushes the current frame and toggles to the sub-models.
func (m *Model) syncViews() {
	m.orrery = m.orrery.UpdateData(m.snapshot, m.sidereal, m.labels)
	m.starWall = m.starWall.UpdateData(m.snapshot, m.sidereal, m.labels)
}

// Snapshot returns the latest frame.
func (m Model) Snapshot() orbit.Snapshot {
	return m.snapshot
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrrery:
		content = m.orrery.View()
	case ViewStarWall:
		content = m.starWall.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗       ██████╗ ██████╗ ██████╗ ███████╗██████╗ ██╗   ██╗`,
		`  ██║     ██╔════╝      ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗╚██╗ ██╔╝`,
		`  ██║     ███████╗█████╗██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝ ╚████╔╝ `,
		`  ██║     ╚════██║╚════╝██║   ██║██╔══██╗██╔══██╗██╔══╝  ██╔══██╗  ╚██╔╝  `,
		`  ███████╗███████║      ╚██████╔╝██║  ██║██║  ██║███████╗██║  ██║   ██║   `,
		`  ╚══════╝╚══════╝       ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝   `,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Celestial Orrery · Sun, Moon and the naked-eye planets"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep blue through violet to warm gold, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Violet (#8B5CF6) -> Gold (#F5B942)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(245-139)
		g = 92 + t*(185-92)
		b = 246 + t*(66-246)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[tab] Orrery", "[tab] Star Wall"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	switch {
	case m.paused:
		status = accentStyle.Render("❚❚") + dimStyle.Render(" paused")
	case m.snapshot.Time.IsZero():
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + " " + m.renderShimmerText("Waiting for first frame...")
	default:
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) +
			dimStyle.Render(" "+m.ctrl.Provider().Name())
	}
	if len(m.snapshot.Held) > 0 {
		status += "  " + warnStyle.Render(fmt.Sprintf("%d held", len(m.snapshot.Held)))
	}

	bindings := OrreryFooterBindings(m.keys)
	if m.viewMode == ViewStarWall {
		bindings = StarWallFooterBindings(m.keys)
	}
	help := Footer{Width: m.width, Bindings: bindings}.View()

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func (m Model) animTickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func dialName(m orbit.Mode) string {
	if m == orbit.Clock12h {
		return "12h"
	}
	return "24h"
}
