package player

import (
	"context"
	"time"

	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
	"github.com/eholt/labyrinth/strategy"
)

// SafePlayer wraps any Player with off-thread execution, a per-call
// deadline, and an ejection teardown hook, so that a blocking,
// panicking, or otherwise misbehaving player can never stall or crash
// the referee. Every method submits the call to the worker pool and
// joins the result with a timeout.
type SafePlayer struct {
	underlying Player
	pool       *Pool
	timeout    time.Duration
	onEjected  func()
}

// NewSafePlayer wraps underlying with the given pool and per-call
// timeout. onEjected is called each time OnEjected is invoked, to let
// the caller tear down any remote resources (e.g. closing a socket).
func NewSafePlayer(underlying Player, pool *Pool, timeout time.Duration, onEjected func()) *SafePlayer {
	return &SafePlayer{
		underlying: underlying,
		pool:       pool,
		timeout:    timeout,
		onEjected:  onEjected,
	}
}

// Name implements Player.
func (s *SafePlayer) Name(ctx context.Context) (string, error) {
	call := Submit(s.pool, func() (string, error) {
		return s.underlying.Name(ctx)
	})
	return call.Join(ctx, s.timeout)
}

// SetUp implements Player.
func (s *SafePlayer) SetUp(ctx context.Context, redacted *state.Redacted, goal geom.Position) error {
	call := Submit(s.pool, func() (struct{}, error) {
		return struct{}{}, s.underlying.SetUp(ctx, redacted, goal)
	})
	_, err := call.Join(ctx, s.timeout)
	return err
}

// TakeTurn implements Player.
func (s *SafePlayer) TakeTurn(ctx context.Context, redacted *state.Redacted) (strategy.Choice, error) {
	call := Submit(s.pool, func() (strategy.Choice, error) {
		return s.underlying.TakeTurn(ctx, redacted)
	})
	return call.Join(ctx, s.timeout)
}

// Win implements Player.
func (s *SafePlayer) Win(ctx context.Context, didWin bool) error {
	call := Submit(s.pool, func() (struct{}, error) {
		return struct{}{}, s.underlying.Win(ctx, didWin)
	})
	_, err := call.Join(ctx, s.timeout)
	return err
}

// OnEjected tears down the wrapped player's remote resources. It is
// called by the referee exactly once, when a player is ejected for
// any reason, and never blocks waiting on the underlying player.
func (s *SafePlayer) OnEjected() {
	if s.onEjected != nil {
		s.onEjected()
	}
}
