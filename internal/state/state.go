// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventModeChanged        EventType = "MODE_CHANGED"
	EventBirthDateSet       EventType = "BIRTH_DATE_SET"
	EventEphemerisHeld      EventType = "EPHEMERIS_HELD"
	EventEphemerisRecovered EventType = "EPHEMERIS_RECOVERED"
)

// Event represents a state change in the running orrery.
type Event struct {
	Type      EventType  `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	FromMode  string     `json:"from_mode,omitempty"`
	Mode      string     `json:"mode,omitempty"`
	Body      string     `json:"body,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Detail    string     `json:"detail,omitempty"`
}

// Manager holds the latest frame and recent events. The render loop writes;
// any number of readers (HTTP handlers, WebSocket pushers) read.
type Manager struct {
	mu sync.RWMutex

	current   orbit.Snapshot
	hasData   bool
	seq       uint64
	published time.Time

	// Recent tick durations, for the frame rate estimate
	dts       []float64
	maxDts    int
	dtWriteAt int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents  int
	MaxTickLog int
	Now        func() time.Time
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:  50,  // Last 50 events
		MaxTickLog: 120, // ~4s of frames at 30fps
		Now:        time.Now,
	}
}

var _ orbit.Observer = (*Manager)(nil)

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxDts := cfg.MaxTickLog
	if maxDts <= 0 {
		maxDts = 120
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		maxDts:    maxDts,
		dts:       make([]float64, 0, maxDts),
		now:       now,
	}
}

// Publish stores the frame produced by the latest tick.
func (m *Manager) Publish(snap orbit.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap.BodyAngles = snap.BodyAngles.Clone()
	snap.Held = append([]ephem.Body(nil), snap.Held...)

	m.current = snap
	m.hasData = true
	m.seq++
	m.published = m.now()
}

// ModeChanged implements orbit.Observer.
func (m *Manager) ModeChanged(from, to orbit.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{
		Type:      EventModeChanged,
		Timestamp: m.now(),
		FromMode:  from.String(),
		Mode:      to.String(),
	})
}

// BodyHeld implements orbit.Observer.
func (m *Manager) BodyHeld(body ephem.Body, err error) {
	e := Event{
		Type:      EventEphemerisHeld,
		Timestamp: m.now(),
		Body:      body.String(),
	}
	if err != nil {
		e.Detail = err.Error()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(e)
}

// BodyRecovered implements orbit.Observer.
func (m *Manager) BodyRecovered(body ephem.Body) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{
		Type:      EventEphemerisRecovered,
		Timestamp: m.now(),
		Body:      body.String(),
	})
}

// Ticked implements orbit.Observer.
func (m *Manager) Ticked(dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.dts) < m.maxDts {
		m.dts = append(m.dts, dt)
		return
	}
	m.dts[m.dtWriteAt] = dt
	m.dtWriteAt = (m.dtWriteAt + 1) % m.maxDts
}

// RecordBirthDate logs a birth date change. A zero time records a reset to
// the default (noon today).
func (m *Manager) RecordBirthDate(t time.Time) {
	e := Event{
		Type:      EventBirthDateSet,
		Timestamp: m.now(),
	}
	if !t.IsZero() {
		e.BirthDate = &t
	} else {
		e.Detail = "cleared"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(e)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Frame     orbit.Snapshot `json:"frame"`
	Seq       uint64         `json:"seq"`
	Published time.Time      `json:"published"`
	FPS       float64        `json:"fps"`
	Events    []Event        `json:"events,omitempty"`
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	frame := m.current
	frame.BodyAngles = frame.BodyAngles.Clone()
	frame.Held = append([]ephem.Body(nil), frame.Held...)

	return Snapshot{
		Frame:     frame,
		Seq:       m.seq,
		Published: m.published,
		FPS:       m.fps(),
		Events:    m.getEventsOrdered(),
	}
}

// Frame returns the latest frame and its sequence number. The sequence
// is zero until the first Publish.
func (m *Manager) Frame() (orbit.Snapshot, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	frame := m.current
	frame.BodyAngles = frame.BodyAngles.Clone()
	frame.Held = append([]ephem.Body(nil), frame.Held...)
	return frame, m.seq
}

// fps averages the logged tick durations. Zero-length ticks are skipped.
func (m *Manager) fps() float64 {
	var sum float64
	var n int
	for _, dt := range m.dts {
		if dt > 0 {
			sum += dt
			n++
		}
	}
	if n == 0 || sum == 0 {
		return 0
	}
	return float64(n) / sum
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if n < 0 || len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasData returns true once at least one frame was published.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
