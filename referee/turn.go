package referee

import (
	"context"
	"errors"

	"github.com/eholt/labyrinth/state"
)

// TurnOutcome is the exhaustive sum type of what one active player's
// turn resolved to: every caller switches over it instead of
// threading errors through the game loop.
type TurnOutcome int

const (
	// OutcomeMoved means the active player rotated, slid, and moved.
	OutcomeMoved TurnOutcome = iota
	// OutcomePassed means the active player declined to move.
	OutcomePassed
	// OutcomeEjected means the active player failed a contract check
	// (timeout, crash, invalid move, invalid JSON, transport loss)
	// and was removed from the game.
	OutcomeEjected
)

// ErrInvalidMove is returned internally when a proposed move fails
// any of the three legality checks: rotation, slide, or destination.
var ErrInvalidMove = errors.New("invalid move")

// turnResult is takeTurn's internal return value: the outcome plus
// whether this turn made the active player an outright winner.
type turnResult struct {
	outcome TurnOutcome
	won     bool
}

// takeTurn calls takeTurn on the current active player, validates any
// proposed move, applies it, and advances the game by exactly one
// turn. The active index is always valid on entry as long as
// len(r.entries) > 0.
func (r *Referee) takeTurn(ctx context.Context) turnResult {
	activeIdx := r.state.ActiveIndex
	entry := r.entries[activeIdx]
	redacted := r.state.CopyRedacted(nil)

	turnCtx, cancel := context.WithTimeout(ctx, r.turnTimeout)
	choice, err := entry.Player.TakeTurn(turnCtx, redacted)
	cancel()
	if err != nil {
		r.ejectAt(activeIdx, err)
		return turnResult{outcome: OutcomeEjected}
	}

	if choice.Pass {
		if r.debug {
			r.log.Printf("referee: %q passes", entry.Name)
		}
		r.state.Advance()
		return turnResult{outcome: OutcomePassed}
	}

	move := choice.Move
	if move.ClockwiseTurns < 0 || move.ClockwiseTurns > 3 {
		r.ejectAt(activeIdx, ErrInvalidMove)
		return turnResult{outcome: OutcomeEjected}
	}
	degrees := move.ClockwiseTurns * 90

	if !r.state.LegalSlide(move.Index, move.Direction) {
		r.ejectAt(activeIdx, ErrInvalidMove)
		return turnResult{outcome: OutcomeEjected}
	}

	destinationOK := false
	trialErr := r.state.WithTrialMove(degrees, move.Index, move.Direction, func(trial *state.State) {
		current := trial.Players[activeIdx].Current
		if current == move.Destination {
			return
		}
		if _, ok := trial.Board.Reachable(current)[move.Destination]; ok {
			destinationOK = true
		}
	})
	if trialErr != nil || !destinationOK {
		r.ejectAt(activeIdx, ErrInvalidMove)
		return turnResult{outcome: OutcomeEjected}
	}

	if err := r.state.RotateSpare(degrees); err != nil {
		r.ejectAt(activeIdx, err)
		return turnResult{outcome: OutcomeEjected}
	}
	if err := r.state.ShiftInsert(move.Index, move.Direction); err != nil {
		r.ejectAt(activeIdx, err)
		return turnResult{outcome: OutcomeEjected}
	}
	if err := r.state.MoveActiveTo(move.Destination); err != nil {
		r.ejectAt(activeIdx, err)
		return turnResult{outcome: OutcomeEjected}
	}

	if r.debug {
		r.log.Printf("referee: %q moves %+v", entry.Name, move)
	}

	won := false
	if r.state.ActiveIsAtGoal() {
		if r.state.ActiveHasWon() {
			won = true
		} else {
			newGoal := r.state.AssignActiveHomeGoal()
			if err := entry.Player.SetUp(ctx, nil, newGoal); err != nil {
				r.ejectAt(activeIdx, err)
				return turnResult{outcome: OutcomeEjected}
			}
		}
	}

	r.notifyObservers()
	if !won {
		r.state.Advance()
	}
	return turnResult{outcome: OutcomeMoved, won: won}
}
