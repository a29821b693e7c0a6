package state

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
)

var epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func testManager(maxEvents int) *Manager {
	cfg := DefaultConfig()
	cfg.MaxEvents = maxEvents
	cfg.Now = steppingClock()
	return NewManager(cfg)
}

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	if _, seq := m.Frame(); seq != 0 {
		t.Errorf("seq = %d before first publish, want 0", seq)
	}
}

func TestManager_Publish(t *testing.T) {
	m := testManager(10)

	snap := orbit.Snapshot{
		BodyAngles:     orbit.AngleTable{ephem.Sun: 1.5, ephem.Moon: -0.25},
		MoonPhaseAngle: math.Pi,
		Mode:           orbit.Live,
		Frame:          ephem.Geocentric,
		Time:           epoch,
		Held:           []ephem.Body{ephem.Saturn},
	}
	m.Publish(snap)
	m.Publish(snap)

	if !m.HasData() {
		t.Error("HasData should be true after Publish")
	}

	got := m.Snapshot()
	if got.Seq != 2 {
		t.Errorf("Seq = %d, want 2", got.Seq)
	}
	if diff := cmp.Diff(snap, got.Frame); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := testManager(10)

	angles := orbit.AngleTable{ephem.Mars: 1}
	held := []ephem.Body{ephem.Mars}
	m.Publish(orbit.Snapshot{BodyAngles: angles, Held: held})

	// Mutating the caller's table must not leak in.
	angles[ephem.Mars] = 99
	held[0] = ephem.Venus

	snap := m.Snapshot()
	if snap.Frame.BodyAngles[ephem.Mars] != 1 {
		t.Errorf("stored angle = %v, want 1", snap.Frame.BodyAngles[ephem.Mars])
	}
	if snap.Frame.Held[0] != ephem.Mars {
		t.Errorf("stored held = %v, want Mars", snap.Frame.Held[0])
	}

	// Nor must mutating a returned snapshot.
	snap.Frame.BodyAngles[ephem.Mars] = 42
	if f, _ := m.Frame(); f.BodyAngles[ephem.Mars] != 1 {
		t.Errorf("angle after mutating snapshot = %v, want 1", f.BodyAngles[ephem.Mars])
	}
}

func TestManager_ObserverEvents(t *testing.T) {
	m := testManager(10)

	m.ModeChanged(orbit.GeocentricDrift, orbit.Aligned)
	m.BodyHeld(ephem.Saturn, errors.New("out of range"))
	m.BodyRecovered(ephem.Saturn)
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	m.RecordBirthDate(birth)
	m.RecordBirthDate(time.Time{})

	want := []Event{
		{Type: EventModeChanged, Timestamp: epoch.Add(1 * time.Second), FromMode: "geocentric", Mode: "aligned"},
		{Type: EventEphemerisHeld, Timestamp: epoch.Add(2 * time.Second), Body: "Saturn", Detail: "out of range"},
		{Type: EventEphemerisRecovered, Timestamp: epoch.Add(3 * time.Second), Body: "Saturn"},
		{Type: EventBirthDateSet, Timestamp: epoch.Add(4 * time.Second), BirthDate: &birth},
		{Type: EventBirthDateSet, Timestamp: epoch.Add(5 * time.Second), Detail: "cleared"},
	}
	if diff := cmp.Diff(want, m.RecentEvents(100)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	m := testManager(5)

	// Generate more events than buffer size
	for i := 0; i < 10; i++ {
		m.ModeChanged(orbit.Modes[i%orbit.NumModes], orbit.Modes[(i+1)%orbit.NumModes])
	}

	events := m.RecentEvents(100)
	if len(events) != 5 {
		t.Fatalf("events count = %d, want 5 (max)", len(events))
	}

	// Verify events are ordered chronologically
	for i := 1; i < len(events); i++ {
		if !events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events not in chronological order at index %d", i)
		}
	}
	if events[4].Timestamp != epoch.Add(10*time.Second) {
		t.Errorf("newest event at %v, want the tenth", events[4].Timestamp)
	}

	if got := m.RecentEvents(2); len(got) != 2 || got[1] != events[4] {
		t.Errorf("RecentEvents(2) = %v", got)
	}
}

func TestManager_FPS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTickLog = 4
	m := NewManager(cfg)

	if fps := m.Snapshot().FPS; fps != 0 {
		t.Errorf("fps with no ticks = %v, want 0", fps)
	}

	// Older ticks fall out of the window.
	for _, dt := range []float64{1, 1, 0.05, 0.05, 0.05, 0.05} {
		m.Ticked(dt)
	}
	if fps := m.Snapshot().FPS; math.Abs(fps-20) > 1e-9 {
		t.Errorf("fps = %v, want 20", fps)
	}

	// Paused frames don't count.
	m.Ticked(0)
	if fps := m.Snapshot().FPS; math.Abs(fps-20) > 1e-9 {
		t.Errorf("fps after zero dt = %v, want 20", fps)
	}
}

func TestManager_AsControllerObserver(t *testing.T) {
	m := testManager(10)

	ctrl, err := orbit.New(ephem.NewMeeusProvider(), orbit.Config{
		Mode:     orbit.GeocentricDrift,
		Frame:    ephem.Geocentric,
		Now:      func() time.Time { return epoch },
		Observer: m,
	})
	if err != nil {
		t.Fatalf("orbit.New: %v", err)
	}
	if err := ctrl.SetMode(orbit.Live); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	m.Publish(ctrl.Tick(0.05))

	snap := m.Snapshot()
	if snap.Frame.Mode != orbit.Live {
		t.Errorf("published mode = %v, want live", snap.Frame.Mode)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != EventModeChanged {
		t.Errorf("events = %+v, want one MODE_CHANGED", snap.Events)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	// Writer goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Publish(orbit.Snapshot{BodyAngles: orbit.AngleTable{ephem.Sun: float64(i)}})
			m.Ticked(0.016)
			if i%10 == 0 {
				m.BodyHeld(ephem.Mars, nil)
			}
		}
	}()

	// Reader goroutines
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_, _ = m.Frame()
				_ = m.RecentEvents(5)
			}
		}()
	}

	wg.Wait()
}
