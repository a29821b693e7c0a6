package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

// ErrBusy is returned by Submit when the command queue is full.
var ErrBusy = errors.New("command queue full")

// commandQueueLen bounds how many control commands may wait for a tick.
const commandQueueLen = 16

// Command is a control request for the running controller. Nil fields are
// left unchanged.
type Command struct {
	Mode       *orbit.Mode
	Frame      *ephem.Frame
	Birth      *time.Time
	ClearBirth bool
}

// Apply performs the command on ctrl. The mode is selected before the frame
// so that leaving a drift mode can pick a frame in the same command.
func (c Command) Apply(ctrl *orbit.Controller) error {
	if c.ClearBirth {
		ctrl.ClearBirthDate()
	}
	if c.Birth != nil {
		ctrl.SetBirthDate(*c.Birth)
	}
	if c.Mode != nil {
		if err := ctrl.SetMode(*c.Mode); err != nil {
			return err
		}
	}
	if c.Frame != nil {
		if err := ctrl.SetFrame(*c.Frame); err != nil {
			return err
		}
	}
	return nil
}

// Commander accepts control commands.
type Commander interface {
	Submit(Command) error
}

// Driver owns a controller in headless mode: it ticks it on a timer, applies
// queued commands between ticks and publishes every frame. The controller
// is only touched from the Run goroutine.
type Driver struct {
	ctrl     *orbit.Controller
	state    *state.Manager
	cmds     chan Command
	interval time.Duration
	log      *logging.Logger
}

// NewDriver creates a driver ticking every interval.
func NewDriver(ctrl *orbit.Controller, st *state.Manager, interval time.Duration, log *logging.Logger) *Driver {
	if log == nil {
		log = logging.Discard()
	}
	if interval <= 0 {
		interval = time.Second / 12
	}
	return &Driver{
		ctrl:     ctrl,
		state:    st,
		cmds:     make(chan Command, commandQueueLen),
		interval: interval,
		log:      log.With("driver"),
	}
}

// Submit queues a command for the next tick without blocking.
func (d *Driver) Submit(cmd Command) error {
	select {
	case d.cmds <- cmd:
		return nil
	default:
		return ErrBusy
	}
}

// Step applies pending commands, advances the controller by dt seconds and
// publishes the result.
func (d *Driver) Step(dt float64) orbit.Snapshot {
	d.drain()
	snap := d.ctrl.Tick(dt)
	d.state.Publish(snap)
	return snap
}

func (d *Driver) drain() {
	for {
		select {
		case cmd := <-d.cmds:
			if err := cmd.Apply(d.ctrl); err != nil {
				d.log.Warn("command rejected: %v", err)
				continue
			}
			if cmd.Birth != nil {
				d.state.RecordBirthDate(*cmd.Birth)
			} else if cmd.ClearBirth {
				d.state.RecordBirthDate(time.Time{})
			}
		default:
			return
		}
	}
}

// Run ticks until ctx is cancelled. dt is the measured wall time between
// ticks; the controller clamps it.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Info("ticking every %v", d.interval)
	last := time.Now()
	d.Step(0)

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			d.Step(dt)
		}
	}
}

// String describes the driver for logs.
func (d *Driver) String() string {
	return fmt.Sprintf("driver(%s, %s, %v)", d.ctrl.Mode(), d.ctrl.Provider().Name(), d.interval)
}
