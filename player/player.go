// Package player defines the Player capability the referee drives,
// and a bounded worker pool used to run player calls off the
// referee's own goroutine.
package player

import (
	"context"

	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
	"github.com/eholt/labyrinth/strategy"
)

// Player is anything the referee can call the four wire methods on:
// a local in-process player, or a RemotePlayer speaking the wire
// protocol over a socket.
type Player interface {
	// Name returns the player's chosen name (used only at handshake).
	Name(ctx context.Context) (string, error)
	// SetUp tells the player about a new game or a new goal. redacted
	// is nil on every call after the first (the player is merely
	// being given a new goal, not a whole new board).
	SetUp(ctx context.Context, redacted *state.Redacted, goal geom.Position) error
	// TakeTurn asks the player to choose a move given the current
	// redacted state.
	TakeTurn(ctx context.Context, redacted *state.Redacted) (strategy.Choice, error)
	// Win tells the player whether they won the game.
	Win(ctx context.Context, didWin bool) error
}

// Pool runs submitted jobs on a bounded number of goroutines so that
// a blocking or panicking call cannot stall the referee.
type Pool struct {
	jobs chan func()
	done chan struct{}
}

// NewPool starts a worker pool with the given number of goroutines.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		jobs: make(chan func()),
		done: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for {
		select {
		case fn := <-p.jobs:
			fn()
		case <-p.done:
			return
		}
	}
}

// Submit runs fn on the next available worker.
func (p *Pool) Submit(fn func()) {
	p.jobs <- fn
}

// Close stops all workers. Jobs already running are not interrupted.
func (p *Pool) Close() {
	close(p.done)
}
