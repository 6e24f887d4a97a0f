// Package observer defines the narrow interface the referee pushes
// state snapshots through after every applied turn and at game end.
// Observer failures are isolated from the game: a slow or broken
// observer never affects play.
package observer

import "github.com/eholt/labyrinth/state"

// Observer receives a deep-copied redacted snapshot of the game state.
// Notify must not block the caller for long; implementations that
// talk to a remote peer should apply their own short internal
// deadline rather than relying on the referee to enforce one.
type Observer interface {
	Notify(snapshot *state.Redacted)
}
