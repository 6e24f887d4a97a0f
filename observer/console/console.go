// Package console implements an observer.Observer that writes a
// one-line summary of each snapshot to a log.Logger, the simplest
// possible observer and a reference implementation for the interface.
package console

import (
	"github.com/eholt/labyrinth/log"
	"github.com/eholt/labyrinth/state"
)

// Observer logs a summary of every snapshot it receives.
type Observer struct {
	Log log.Logger
}

// New returns a console Observer that writes through l.
func New(l log.Logger) *Observer {
	return &Observer{Log: l}
}

// Notify implements observer.Observer. The snapshot's first player is
// the one whose turn it is.
func (o *Observer) Notify(snapshot *state.Redacted) {
	active := "none"
	if len(snapshot.Players) > 0 {
		active = snapshot.Players[0].Color
	}
	o.Log.Printf("state: %d players, active %s, last move %v",
		len(snapshot.Players), active, snapshot.Last)
}
