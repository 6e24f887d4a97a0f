// Package referee drives a single Labyrinth game to completion: it
// broadcasts setup, loops turns against the active player, validates
// and applies moves, ejects cheaters, tracks round/termination rules,
// and broadcasts the final win/lose result.
package referee

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eholt/labyrinth/log"
	"github.com/eholt/labyrinth/observer"
	"github.com/eholt/labyrinth/player"
	"github.com/eholt/labyrinth/state"
)

// defaultMaxRounds is the round cap applied when Config.MaxRounds is
// left at zero.
const defaultMaxRounds = 1000

// observerQueueSize bounds how many snapshots may be pending for one
// observer; once an observer's queue is full, notifyObservers drops
// further snapshots for it rather than blocking the referee.
const observerQueueSize = 256

// observerDrainTimeout bounds how long Run waits for observers to
// finish draining their final snapshot once the game has ended.
const observerDrainTimeout = 2 * time.Second

type (
	// Entry pairs a safe player adapter with the name it gave during
	// signup handshake, so winners/cheaters can be reported by name.
	// It is kept index-aligned with the referee's state.State.Players
	// vector: ejecting index i removes entry i from both vectors in
	// lockstep. A parallel vector rather than a back-pointer keeps
	// State and Referee from referencing each other.
	Entry struct {
		Name   string
		Player *player.SafePlayer
	}

	// Config contains the properties that govern one referee's
	// behavior.
	Config struct {
		// Debug causes the referee to log every turn outcome.
		Debug bool
		// Log is used to log warnings and unexpected errors.
		Log log.Logger
		// TournamentID correlates this referee's log lines with the
		// signup handoff that created it. The zero UUID is allowed
		// (e.g. in tests); New generates one if left unset.
		TournamentID uuid.UUID
		// TurnTimeout bounds a single takeTurn call.
		TurnTimeout time.Duration
		// SetupTimeout bounds the whole concurrent setup broadcast.
		SetupTimeout time.Duration
		// WinTimeout bounds the whole concurrent win broadcast.
		WinTimeout time.Duration
		// MaxRounds caps the number of rounds played before the game
		// is called for whoever is closest to victory. Zero uses
		// defaultMaxRounds.
		MaxRounds int
	}

	// Result is the public outcome of a completed game: two lists of
	// player names, reported in the order the referee used
	// internally. External harnesses may sort them.
	Result struct {
		Winners  []string
		Cheaters []string
	}

	// Referee drives one game from setup through to a win broadcast.
	Referee struct {
		debug        bool
		log          log.Logger
		tournamentID uuid.UUID
		turnTimeout  time.Duration
		setupTimeout time.Duration
		winTimeout   time.Duration
		maxRounds    int
		state        *state.State
		entries      []Entry
		observers    []observer.Observer
		observerQs   []chan *state.Redacted
		observerWG   sync.WaitGroup
		cheaters     []string
	}
)

func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.TurnTimeout <= 0:
		return fmt.Errorf("positive turn timeout required")
	case cfg.SetupTimeout <= 0:
		return fmt.Errorf("positive setup timeout required")
	case cfg.WinTimeout <= 0:
		return fmt.Errorf("positive win timeout required")
	}
	return nil
}

// New creates a Referee for a single game. s and entries must already
// be index-aligned (entries[i] is the player occupying s.Players[i]).
func (cfg Config) New(s *state.State, entries []Entry, observers []observer.Observer) (*Referee, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating referee: validation: %w", err)
	}
	if len(entries) != len(s.Players) {
		return nil, fmt.Errorf("creating referee: %d entries for %d players", len(entries), len(s.Players))
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	tournamentID := cfg.TournamentID
	if tournamentID == uuid.Nil {
		tournamentID = uuid.New()
	}
	r := &Referee{
		debug:        cfg.Debug,
		log:          cfg.Log,
		tournamentID: tournamentID,
		turnTimeout:  cfg.TurnTimeout,
		setupTimeout: cfg.SetupTimeout,
		winTimeout:   cfg.WinTimeout,
		maxRounds:    maxRounds,
		state:        s,
		entries:      append([]Entry(nil), entries...),
		observers:    observers,
		observerQs:   make([]chan *state.Redacted, len(observers)),
	}
	r.observerWG.Add(len(observers))
	for i, obs := range observers {
		q := make(chan *state.Redacted, observerQueueSize)
		r.observerQs[i] = q
		go r.drainObserver(obs, q)
	}
	return r, nil
}

// drainObserver runs on its own goroutine per observer so that one
// observer's submissions are always delivered in the order they were
// produced (FIFO per observer), independent of how many other
// observers or player calls are in flight on the shared pool.
func (r *Referee) drainObserver(obs observer.Observer, q chan *state.Redacted) {
	for snapshot := range q {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.log.Printf("referee: observer panicked: %v", rec)
				}
			}()
			obs.Notify(snapshot)
		}()
	}
	r.observerWG.Done()
}

// Run drives the game to completion: setup broadcast, the turn loop,
// and the win broadcast, returning the final winners/cheaters.
func (r *Referee) Run(ctx context.Context) (*Result, error) {
	r.broadcastSetup(ctx)

	roundLength := len(r.entries)
	roundTurnsTaken := 0
	roundsCompleted := 0
	anyMovedInRound := false
	gameWon := false

	for len(r.entries) > 0 && !gameWon {
		outcome := r.takeTurn(ctx)
		if outcome.outcome == OutcomeMoved {
			anyMovedInRound = true
		}
		if outcome.won {
			gameWon = true
			break
		}
		roundTurnsTaken++
		if len(r.entries) == 0 {
			break
		}
		if roundTurnsTaken >= roundLength {
			if !anyMovedInRound {
				break
			}
			roundsCompleted++
			if roundsCompleted >= r.maxRounds {
				break
			}
			roundLength = len(r.entries)
			roundTurnsTaken = 0
			anyMovedInRound = false
		}
	}

	winnerNames := r.broadcastWin(ctx, r.winnerNames())
	r.notifyObservers()
	r.closeObservers()
	return &Result{Winners: winnerNames, Cheaters: r.cheaters}, nil
}

// closeObservers closes every observer's submission queue and joins
// its drain goroutine with a short deadline, so the final game-end
// snapshot has a chance to be delivered before Run returns. Observers
// are never waited on with a deadline that could affect game
// progress while the game is still live; this join only happens once
// the game is already over.
func (r *Referee) closeObservers() {
	for _, q := range r.observerQs {
		close(q)
	}
	done := make(chan struct{})
	go func() {
		r.observerWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(observerDrainTimeout):
		r.log.Printf("referee: observers did not drain before timeout")
	}
}

// winnerNames resolves state.ClosestToVictory()'s indices into the
// entries' recorded names.
func (r *Referee) winnerNames() []string {
	indices := r.state.ClosestToVictory()
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		names = append(names, r.entries[i].Name)
	}
	return names
}

// ejectAt removes the player at index i from both the state and the
// parallel entries vector, records them as a cheater, and tears down
// their remote resources.
func (r *Referee) ejectAt(i int, reason error) {
	entry := r.entries[i]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	r.state.EjectPlayer(i)
	r.cheaters = append(r.cheaters, entry.Name)
	if r.debug {
		r.log.Printf("referee[%s] ejecting %q: %v", r.tournamentID, entry.Name, reason)
	}
	entry.Player.OnEjected()
}

// notifyObservers submits a deep copy of the current state to every
// observer's own FIFO queue, fire-and-forget: a failing or slow
// observer cannot affect the game, so failures are not returned or
// retried, and one observer's queue backing up never reorders or
// blocks another's.
func (r *Referee) notifyObservers() {
	if len(r.observerQs) == 0 {
		return
	}
	snapshot := r.state.CopyRedacted(nil)
	for _, q := range r.observerQs {
		select {
		case q <- snapshot:
		default:
			r.log.Printf("referee: observer queue full, dropping snapshot")
		}
	}
}
