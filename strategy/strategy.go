// Package strategy defines the narrow interface an external move
// chooser must implement; the core never implements one itself.
package strategy

import (
	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
)

// Move is a chosen slide, rotation, and destination.
type Move struct {
	Index          int
	Direction      geom.Direction
	ClockwiseTurns int // quarter turns, 0-3
	Destination    geom.Position
}

// Choice is either a Move or a pass; exactly one of the two is valid,
// indicated by Pass.
type Choice struct {
	Pass bool
	Move Move
}

// Strategy is a pure decision function: given a redacted snapshot of
// the game and the chooser's primary goal, it returns a Choice. The
// core only consumes this interface; concrete choosers (Riemann,
// Euclid, and the like) live outside this module.
type Strategy interface {
	Choose(redacted *state.Redacted, primaryGoal geom.Position) Choice
}
