package ui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

var epoch = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

// fakeProvider returns fixed longitudes in every frame.
type fakeProvider struct {
	lon   map[ephem.Body]float64
	phase float64
}

func (p fakeProvider) Name() string { return "fake" }

func (p fakeProvider) Longitude(body ephem.Body, _ time.Time, _ ephem.Frame) (float64, error) {
	if v, ok := p.lon[body]; ok {
		return v, nil
	}
	return 0, ephem.ErrNoData
}

func (p fakeProvider) MoonPhase(time.Time) (float64, error) {
	return p.phase, nil
}

func testProvider() fakeProvider {
	return fakeProvider{
		lon: map[ephem.Body]float64{
			ephem.Moon:    10,
			ephem.Mercury: 330,
			ephem.Venus:   300,
			ephem.Sun:     340,
			ephem.Mars:    320,
			ephem.Jupiter: 50,
			ephem.Saturn:  345,
		},
		phase: 30,
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	cfg := orbit.DefaultConfig()
	cfg.Location = time.UTC
	cfg.Now = func() time.Time { return epoch }
	ctrl, err := orbit.New(testProvider(), cfg)
	if err != nil {
		t.Fatalf("orbit.New: %v", err)
	}
	m := New(ctrl, opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return next.(Model)
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(AnimTickMsg(at))
	return next.(Model)
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelInit(t *testing.T) {
	cfg := orbit.DefaultConfig()
	ctrl, err := orbit.New(testProvider(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := New(ctrl, Options{})

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}
	if m.Init() == nil {
		t.Error("Init() should schedule the first frame")
	}
	if m.viewMode != ViewOrrery {
		t.Errorf("viewMode = %d, want ViewOrrery", m.viewMode)
	}
	if m.dial != orbit.Clock24h {
		t.Errorf("dial = %v, want clock24h", m.dial)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = next.(Model)
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}
	if m.orrery.width != 120 || m.orrery.height != 35 {
		t.Errorf("orrery size = %dx%d, want 120x35", m.orrery.width, m.orrery.height)
	}
	if !strings.Contains(m.View(), "Orrery") {
		t.Error("View() missing the Orrery tab")
	}
}

func TestAnimTickAdvancesController(t *testing.T) {
	m := newTestModel(t, Options{})

	m = tick(m, epoch)
	first := m.Snapshot().BodyAngles.Clone()
	if m.Snapshot().Mode != orbit.GeocentricDrift {
		t.Fatalf("mode = %v, want geocentric", m.Snapshot().Mode)
	}

	m = tick(m, epoch.Add(50*time.Millisecond))
	if cmp.Equal(first, m.Snapshot().BodyAngles) {
		t.Error("angles did not move between drift frames")
	}
}

func TestFirstTickIsStill(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.ctrl.Angles()

	m = tick(m, epoch)
	if diff := cmp.Diff(before, m.Snapshot().BodyAngles); diff != "" {
		t.Errorf("first frame moved bodies (-before +after):\n%s", diff)
	}
}

func TestPauseFreezesAngles(t *testing.T) {
	m := newTestModel(t, Options{})
	m = tick(m, epoch)

	m, _ = press(m, "p")
	if !m.paused {
		t.Fatal("p should pause")
	}
	before := m.Snapshot().BodyAngles.Clone()
	m = tick(m, epoch.Add(time.Second))
	m = tick(m, epoch.Add(2*time.Second))
	if diff := cmp.Diff(before, m.Snapshot().BodyAngles); diff != "" {
		t.Errorf("paused frame moved bodies (-before +after):\n%s", diff)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("footer should show paused")
	}

	m, _ = press(m, "p")
	if m.paused {
		t.Error("second p should resume")
	}
}

func TestModeKeys(t *testing.T) {
	tests := []struct {
		key  string
		want orbit.Mode
	}{
		{"1", orbit.GeocentricDrift},
		{"2", orbit.HeliocentricDrift},
		{"3", orbit.Live},
		{"4", orbit.Aligned},
		{"5", orbit.BirthDate},
		{"6", orbit.Clock24h},
		{"7", orbit.Clock12h},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t, Options{})
			if tt.want == orbit.GeocentricDrift {
				m, _ = press(m, "3")
				m = tick(m, epoch)
			}
			m, _ = press(m, tt.key)
			m = tick(m, epoch.Add(time.Second))
			if got := m.Snapshot().Mode; got != tt.want {
				t.Errorf("mode after %q = %v, want %v", tt.key, got, tt.want)
			}
			if want := "mode: " + tt.want.String(); m.statusMsg != want {
				t.Errorf("statusMsg = %q, want %q", m.statusMsg, want)
			}
		})
	}
}

func TestFrameToggle(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(m, "f")
	if m.statusMsg != "frame is fixed in drift modes" {
		t.Errorf("statusMsg in drift mode = %q", m.statusMsg)
	}

	m, _ = press(m, "3")
	m = tick(m, epoch)
	m, _ = press(m, "f")
	if m.ctrl.Frame() != ephem.Heliocentric {
		t.Errorf("frame = %v, want heliocentric", m.ctrl.Frame())
	}
	m, _ = press(m, "f")
	if m.ctrl.Frame() != ephem.Geocentric {
		t.Errorf("frame = %v, want geocentric", m.ctrl.Frame())
	}
}

func TestDialToggle(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(m, "d")
	if m.dial != orbit.Clock12h || m.statusMsg != "dial: 12h" {
		t.Errorf("outside clock modes: dial = %v, status = %q", m.dial, m.statusMsg)
	}

	m, _ = press(m, "6")
	m = tick(m, epoch)
	m, _ = press(m, "d")
	m = tick(m, epoch.Add(time.Second))
	if m.Snapshot().Mode != orbit.Clock12h {
		t.Errorf("mode after dial toggle = %v, want clock12h", m.Snapshot().Mode)
	}
}

func TestSiderealAndLabels(t *testing.T) {
	m := newTestModel(t, Options{Sidereal: true})
	if !m.orrery.sidereal || !m.starWall.sidereal {
		t.Fatal("Sidereal option not passed to views")
	}

	m, _ = press(m, "s")
	if m.sidereal || m.orrery.sidereal {
		t.Error("s should switch to tropical")
	}

	want := []LabelMode{LabelAll, LabelNone, LabelBodies}
	for _, w := range want {
		m, _ = press(m, "l")
		if m.labels != w || m.orrery.labels != w || m.starWall.labels != w {
			t.Errorf("labels = %v, want %v", m.labels, w)
		}
	}
}

func TestPublishesToState(t *testing.T) {
	st := state.NewManager(state.DefaultConfig())
	m := newTestModel(t, Options{State: st})

	if st.HasData() {
		t.Fatal("state has data before the first frame")
	}
	m = tick(m, epoch)
	m = tick(m, epoch.Add(80*time.Millisecond))

	frame, seq := st.Frame()
	if seq != 2 {
		t.Errorf("seq = %d, want 2", seq)
	}
	if diff := cmp.Diff(m.Snapshot().BodyAngles, frame.BodyAngles); diff != "" {
		t.Errorf("published angles differ (-model +state):\n%s", diff)
	}
}

func TestConfigReload(t *testing.T) {
	tests := []struct {
		name       string
		msg        ConfigReloadMsg
		wantStatus string
		wantMode   orbit.Mode
		wantSid    bool
		wantDial   orbit.Mode
	}{
		{
			name:       "applied",
			msg:        ConfigReloadMsg{Config: config.Config{Mode: "aligned", Timezone: "UTC", Sidereal: true, ClockDial: "12h"}},
			wantStatus: "config reloaded",
			wantMode:   orbit.Aligned,
			wantSid:    true,
			wantDial:   orbit.Clock12h,
		},
		{
			name:       "load error",
			msg:        ConfigReloadMsg{Err: errors.New("yaml: line 3: mapping values are not allowed")},
			wantStatus: "config reload failed",
			wantMode:   orbit.GeocentricDrift,
			wantDial:   orbit.Clock24h,
		},
		{
			name:       "bad mode",
			msg:        ConfigReloadMsg{Config: config.Config{Mode: "warp", Timezone: "UTC"}},
			wantStatus: "config reload failed",
			wantMode:   orbit.GeocentricDrift,
			wantDial:   orbit.Clock24h,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Options{})
			next, _ := m.Update(tt.msg)
			m = tick(next.(Model), epoch)

			if !strings.HasPrefix(m.statusMsg, tt.wantStatus) {
				t.Errorf("statusMsg = %q, want prefix %q", m.statusMsg, tt.wantStatus)
			}
			if m.Snapshot().Mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", m.Snapshot().Mode, tt.wantMode)
			}
			if m.sidereal != tt.wantSid {
				t.Errorf("sidereal = %v, want %v", m.sidereal, tt.wantSid)
			}
			if m.dial != tt.wantDial {
				t.Errorf("dial = %v, want %v", m.dial, tt.wantDial)
			}
		})
	}
}

func TestViewSwitch(t *testing.T) {
	m := newTestModel(t, Options{})
	m = tick(m, epoch)

	m, _ = press(m, "tab")
	if m.viewMode != ViewStarWall {
		t.Fatalf("viewMode = %d, want ViewStarWall", m.viewMode)
	}
	if !strings.Contains(m.View(), "Center:") {
		t.Error("star wall status line missing")
	}

	// Pan keys only reach the star wall while it is shown
	m, _ = press(m, "left")
	if m.starWall.CenterLon() != 195 {
		t.Errorf("CenterLon = %v, want 195", m.starWall.CenterLon())
	}

	m, _ = press(m, "w")
	if m.viewMode != ViewOrrery {
		t.Errorf("viewMode = %d, want ViewOrrery", m.viewMode)
	}
	m, _ = press(m, "left")
	if m.starWall.CenterLon() != 195 {
		t.Error("pan applied while the orrery view was active")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}

	_, cmd = press(m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestReset(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "4")
	m = tick(m, epoch)

	m, _ = press(m, "r")
	want := orbit.DefaultAlignedDeg * math.Pi / 180
	if got := m.ctrl.Angles()[ephem.Sun]; math.Abs(got-want) > 1e-12 {
		t.Errorf("Sun after reset = %v, want %v", got, want)
	}
	if m.statusMsg != "reset" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}
