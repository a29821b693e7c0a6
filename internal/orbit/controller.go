package orbit

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/logging"
)

// Controller defaults.
const (
	DefaultLerpRate   = 2.0 // fraction of the remaining arc per second
	DefaultMaxDt      = 0.1 // seconds
	DefaultAlignedDeg = -90.0
)

// Config configures a Controller. Start from DefaultConfig.
type Config struct {
	Mode       Mode
	Frame      ephem.Frame // display frame for modes that don't force one
	LerpRate   float64
	MaxDt      float64 // at most DefaultMaxDt
	AlignedDeg float64
	Location   *time.Location // wall clock for Clock24h and default birth dates
	Now        func() time.Time
	Logger     *logging.Logger
	Observer   Observer
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		Mode:       GeocentricDrift,
		Frame:      ephem.Geocentric,
		LerpRate:   DefaultLerpRate,
		MaxDt:      DefaultMaxDt,
		AlignedDeg: DefaultAlignedDeg,
		Location:   time.Local,
		Now:        time.Now,
	}
}

// Controller owns the angle table of one orrery and advances it once per
// frame. It is not safe for concurrent use: the host render loop is its
// only caller.
type Controller struct {
	cfg      Config
	provider ephem.Provider
	log      *logging.Logger
	obs      Observer

	mode     Mode // active this tick
	selected Mode // requested by SetMode, applied at the next tick
	frame    ephem.Frame

	table     AngleTable
	moonPhase float64

	birth      time.Time
	hasBirth   bool
	birthCache *birthCache

	held      map[ephem.Body]bool
	phaseHeld bool
}

// New creates a controller in cfg.Mode with angles reset for that mode.
func New(provider ephem.Provider, cfg Config) (*Controller, error) {
	if provider == nil {
		return nil, fmt.Errorf("orbit: nil provider")
	}
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(cfg.Mode))
	}
	if cfg.Frame != ephem.Geocentric && cfg.Frame != ephem.Heliocentric {
		return nil, fmt.Errorf("%w: %d", ephem.ErrUnsupportedFrame, int(cfg.Frame))
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"lerp rate", cfg.LerpRate}, {"max dt", cfg.MaxDt}, {"aligned angle", cfg.AlignedDeg}} {
		if !finite(v.val) {
			return nil, fmt.Errorf("orbit: %s must be finite, got %v", v.name, v.val)
		}
	}
	if cfg.LerpRate <= 0 {
		cfg.LerpRate = DefaultLerpRate
	}
	if cfg.MaxDt <= 0 || cfg.MaxDt > DefaultMaxDt {
		cfg.MaxDt = DefaultMaxDt
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Observer == nil {
		cfg.Observer = Observers{}
	}

	c := &Controller{
		cfg:      cfg,
		provider: provider,
		log:      cfg.Logger.With("orbit"),
		obs:      cfg.Observer,
		mode:     cfg.Mode,
		selected: cfg.Mode,
		frame:    cfg.Frame,
	}
	if f, ok := c.mode.DriftFrame(); ok {
		c.frame = f
	}
	c.Reset()
	return c, nil
}

// Mode returns the selected mode.
func (c *Controller) Mode() Mode {
	return c.selected
}

// Frame returns the display frame.
func (c *Controller) Frame() ephem.Frame {
	return c.frame
}

// Provider returns the ephemeris the controller reads.
func (c *Controller) Provider() ephem.Provider {
	return c.provider
}

// SetMode selects a mode. The switch takes effect at the start of the next
// tick; angles carry over and ease toward the new targets.
func (c *Controller) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	c.selected = m
	return nil
}

// SetFrame selects the display frame for the non-drift modes. Drift modes
// force their own frame.
func (c *Controller) SetFrame(f ephem.Frame) error {
	if f != ephem.Geocentric && f != ephem.Heliocentric {
		return fmt.Errorf("%w: %d", ephem.ErrUnsupportedFrame, int(f))
	}
	if _, forced := c.selected.DriftFrame(); forced {
		return nil
	}
	c.frame = f
	return nil
}

// SetBirthDate sets the instant shown in BirthDate mode.
func (c *Controller) SetBirthDate(t time.Time) {
	c.birth = t
	c.hasBirth = true
}

// ClearBirthDate reverts BirthDate mode to noon of the current day.
func (c *Controller) ClearBirthDate() {
	c.birth = time.Time{}
	c.hasBirth = false
}

// BirthDate returns the chosen instant, if any.
func (c *Controller) BirthDate() (time.Time, bool) {
	return c.birth, c.hasBirth
}

// Angles returns a copy of the current angle table.
func (c *Controller) Angles() AngleTable {
	return c.table.Clone()
}

// Reset puts every body at the resting angle of the current mode: evenly
// staggered for drift modes, the aligned angle, or directly on its target.
func (c *Controller) Reset() {
	c.applyMode()
	now := c.cfg.Now()

	c.table = make(AngleTable, ephem.NumBodies)
	for _, b := range ephem.Bodies {
		c.table[b] = 0
	}
	bodies := domain(c.frame)
	for i, b := range bodies {
		c.table[b] = float64(i) * 2 * math.Pi / float64(len(bodies))
	}

	c.held = make(map[ephem.Body]bool)
	c.phaseHeld = false

	held := heldSet{}
	for b, a := range c.targets(now, held) {
		c.table[b] = a
	}
	if deg, err := c.provider.MoonPhase(c.phaseInstant(now)); err == nil && finite(deg) {
		c.moonPhase = degToRad(deg)
	}
}

// Tick advances the table by dt seconds and returns the frame's snapshot.
// dt is clamped to [0, MaxDt]. Tick never fails: a body whose ephemeris
// errors keeps its previous angle and is listed in Snapshot.Held.
func (c *Controller) Tick(dt float64) Snapshot {
	c.applyMode()
	dt = c.clampDt(dt)
	now := c.cfg.Now()

	held := heldSet{}
	if c.mode.Drift() {
		c.drift(c.frame, dt)
	} else {
		targets := c.targets(now, held)
		for _, b := range domain(c.frame) {
			target, ok := targets[b]
			if !ok {
				continue
			}
			c.table[b] = LerpAngle(c.table[b], target, c.cfg.LerpRate, dt)
		}
	}

	c.updateMoonPhase(now)
	c.trackHeld(held)
	c.obs.Ticked(dt)

	return Snapshot{
		BodyAngles:     c.table.Clone(),
		MoonPhaseAngle: c.moonPhase,
		Mode:           c.mode,
		Frame:          c.frame,
		Time:           c.phaseInstant(now),
		Held:           held.bodies(),
	}
}

// applyMode makes the selected mode active.
func (c *Controller) applyMode() {
	if c.selected == c.mode {
		return
	}
	from := c.mode
	c.mode = c.selected
	if f, ok := c.mode.DriftFrame(); ok {
		c.frame = f
	}
	c.log.Info("mode %s -> %s (%s)", from, c.mode, c.frame)
	c.obs.ModeChanged(from, c.mode)
}

func (c *Controller) clampDt(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > c.cfg.MaxDt {
		return c.cfg.MaxDt
	}
	return dt
}

// targets dispatches to the target rule of the active mode. Drift modes have
// no targets.
func (c *Controller) targets(now time.Time, held heldSet) map[ephem.Body]float64 {
	switch c.mode {
	case Live:
		return c.liveTargets(now, c.frame, held)
	case Aligned:
		return c.alignedTargets(c.frame)
	case BirthDate:
		return c.birthTargets(now, c.frame, held)
	case Clock24h:
		return c.clockTargets(now, c.frame, held)
	case GeocentricDrift, HeliocentricDrift, Clock12h:
		return nil
	default:
		return nil
	}
}

func (c *Controller) liveTargets(now time.Time, frame ephem.Frame, held heldSet) map[ephem.Body]float64 {
	targets := make(map[ephem.Body]float64, ephem.NumBodies)
	for _, b := range domain(frame) {
		lon, err := c.longitude(b, now, ephem.Geocentric)
		if err != nil {
			held.add(b, err)
			continue
		}
		targets[b] = -degToRad(lon)
	}
	return targets
}

func (c *Controller) alignedTargets(frame ephem.Frame) map[ephem.Body]float64 {
	targets := make(map[ephem.Body]float64, ephem.NumBodies)
	for _, b := range domain(frame) {
		targets[b] = degToRad(c.cfg.AlignedDeg)
	}
	return targets
}

// longitude asks the provider for a body, deriving Earth from the Sun and
// rejecting non-finite values.
func (c *Controller) longitude(b ephem.Body, t time.Time, frame ephem.Frame) (float64, error) {
	if b == ephem.Earth {
		sun, err := c.longitude(ephem.Sun, t, ephem.Geocentric)
		if err != nil {
			return 0, err
		}
		return sun + 180, nil
	}
	lon, err := c.provider.Longitude(b, t, frame)
	if err != nil {
		return 0, err
	}
	if !finite(lon) {
		return 0, fmt.Errorf("%w: %s longitude is %v", ephem.ErrNoData, b, lon)
	}
	return lon, nil
}

// phaseInstant is the instant the snapshot describes.
func (c *Controller) phaseInstant(now time.Time) time.Time {
	if c.mode == BirthDate {
		return c.birthInstant(now)
	}
	return now
}

func (c *Controller) updateMoonPhase(now time.Time) {
	deg, err := c.provider.MoonPhase(c.phaseInstant(now))
	if err == nil && !finite(deg) {
		err = fmt.Errorf("%w: moon phase is %v", ephem.ErrNoData, deg)
	}
	if err != nil {
		if !c.phaseHeld {
			c.log.Debug("moon phase held: %v", err)
		}
		c.phaseHeld = true
		return
	}
	if c.phaseHeld {
		c.log.Debug("moon phase recovered")
	}
	c.phaseHeld = false
	c.moonPhase = degToRad(deg)
}

// trackHeld reports bodies entering and leaving the held state.
func (c *Controller) trackHeld(held heldSet) {
	for _, b := range ephem.Bodies {
		err, isHeld := held[b]
		was := c.held[b]
		switch {
		case isHeld && !was:
			c.log.Debug("%s held: %v", b, err)
			c.obs.BodyHeld(b, err)
			c.held[b] = true
		case !isHeld && was:
			c.log.Debug("%s recovered", b)
			c.obs.BodyRecovered(b)
			delete(c.held, b)
		}
	}
}

// heldSet records the bodies that kept their angle this tick.
type heldSet map[ephem.Body]error

func (h heldSet) add(b ephem.Body, err error) {
	h[b] = err
}

func (h heldSet) bodies() []ephem.Body {
	if len(h) == 0 {
		return nil
	}
	out := make([]ephem.Body, 0, len(h))
	for _, b := range ephem.Bodies {
		if _, ok := h[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// domain lists the bodies drawn on a ring in frame, in canonical order.
func domain(frame ephem.Frame) []ephem.Body {
	out := make([]ephem.Body, 0, ephem.NumBodies)
	for _, b := range ephem.Bodies {
		if b.InFrame(frame) {
			out = append(out, b)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
