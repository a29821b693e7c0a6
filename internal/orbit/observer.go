package orbit

import "github.com/litescript/ls-orrery/internal/ephem"

// Observer is notified of controller state changes. Calls are made
// synchronously from Tick and must not block.
type Observer interface {
	ModeChanged(from, to Mode)
	BodyHeld(body ephem.Body, err error)
	BodyRecovered(body ephem.Body)
	Ticked(dt float64)
}

// Observers fans notifications out to several observers.
type Observers []Observer

func (o Observers) ModeChanged(from, to Mode) {
	for _, obs := range o {
		obs.ModeChanged(from, to)
	}
}

func (o Observers) BodyHeld(body ephem.Body, err error) {
	for _, obs := range o {
		obs.BodyHeld(body, err)
	}
}

func (o Observers) BodyRecovered(body ephem.Body) {
	for _, obs := range o {
		obs.BodyRecovered(body)
	}
}

func (o Observers) Ticked(dt float64) {
	for _, obs := range o {
		obs.Ticked(dt)
	}
}
