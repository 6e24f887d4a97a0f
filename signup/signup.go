// Package signup accepts incoming TCP connections, handshakes each
// one for a player name, and once enough players have joined within
// the admission window, builds a board and hands the frozen roster
// off to a referee for exactly one game.
package signup

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/eholt/labyrinth/log"
	"github.com/eholt/labyrinth/observer"
	"github.com/eholt/labyrinth/player"
	"github.com/eholt/labyrinth/referee"
	"github.com/eholt/labyrinth/remote"
	"github.com/eholt/labyrinth/state"
)

const (
	defaultWaitingPeriod    = 20 * time.Second
	defaultHandshakeTimeout = 5 * time.Second
	defaultMinToStart       = 2
	defaultMaxToStart       = 6
	defaultNPeriods         = 2
)

// namePattern is the only shape a handshake name may take.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

type (
	// Config contains the properties that govern one signup server's
	// admission window and the game it hands off to.
	Config struct {
		// Debug logs admission and handoff events.
		Debug bool
		// Log is used to log warnings and admission events.
		Log log.Logger
		// WaitingPeriod is the length of one admission period.
		// Zero uses defaultWaitingPeriod.
		WaitingPeriod time.Duration
		// HandshakeTimeout bounds how long a single connection has
		// to send its name. Zero uses defaultHandshakeTimeout.
		HandshakeTimeout time.Duration
		// MinToStart is the roster size that, checked at the end of
		// each waiting period, starts the game. Zero uses
		// defaultMinToStart.
		MinToStart int
		// MaxToStart caps the roster; surplus connections (oldest
		// dropped last) are closed unplayed. Zero uses
		// defaultMaxToStart.
		MaxToStart int
		// NPeriods is how many waiting periods are given before
		// giving up with an empty result. Zero uses defaultNPeriods.
		NPeriods int
		// PoolSize sizes the worker pool every admitted player's
		// SafePlayer calls run on. Zero defaults to MaxToStart.
		PoolSize int
		// RefereeCfg configures the referee the frozen roster is
		// handed off to.
		RefereeCfg referee.Config
		// Observers receive the running game's state snapshots.
		Observers []observer.Observer
		// Shuffle randomizes board generation. Nil uses
		// math/rand.Shuffle.
		Shuffle ShuffleFunc
	}

	// candidate is one handshaked, not-yet-admitted-or-rejected
	// connection.
	candidate struct {
		id     uuid.UUID
		name   string
		stream *remote.Stream
		conn   net.Conn
	}

	// Server is a one-shot signup acceptor: Run drives exactly one
	// admission window followed by exactly one game.
	Server struct {
		debug            bool
		log              log.Logger
		waitingPeriod    time.Duration
		handshakeTimeout time.Duration
		minToStart       int
		maxToStart       int
		nPeriods         int
		poolSize         int
		refereeCfg       referee.Config
		observers        []observer.Observer
		shuffle          ShuffleFunc
		listener         net.Listener
		admit            chan *candidate
	}
)

func (cfg Config) validate() error {
	if cfg.Log == nil {
		return fmt.Errorf("log required")
	}
	return nil
}

// New creates a Server that accepts connections on listener.
func (cfg Config) New(listener net.Listener) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating signup server: validation: %w", err)
	}
	if listener == nil {
		return nil, fmt.Errorf("creating signup server: listener required")
	}
	waitingPeriod := cfg.WaitingPeriod
	if waitingPeriod <= 0 {
		waitingPeriod = defaultWaitingPeriod
	}
	handshakeTimeout := cfg.HandshakeTimeout
	if handshakeTimeout <= 0 {
		handshakeTimeout = defaultHandshakeTimeout
	}
	minToStart := cfg.MinToStart
	if minToStart <= 0 {
		minToStart = defaultMinToStart
	}
	maxToStart := cfg.MaxToStart
	if maxToStart <= 0 {
		maxToStart = defaultMaxToStart
	}
	nPeriods := cfg.NPeriods
	if nPeriods <= 0 {
		nPeriods = defaultNPeriods
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = maxToStart
	}
	shuffle := cfg.Shuffle
	if shuffle == nil {
		shuffle = func(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
	}
	s := &Server{
		debug:            cfg.Debug,
		log:              cfg.Log,
		waitingPeriod:    waitingPeriod,
		handshakeTimeout: handshakeTimeout,
		minToStart:       minToStart,
		maxToStart:       maxToStart,
		nPeriods:         nPeriods,
		poolSize:         poolSize,
		refereeCfg:       cfg.RefereeCfg,
		observers:        cfg.Observers,
		shuffle:          shuffle,
		listener:         listener,
		admit:            make(chan *candidate),
	}
	return s, nil
}

// Run accepts connections, admits a roster across up to nPeriods
// waiting periods, and either plays the resulting game to completion
// or gives up with an empty Result if too few players ever joined.
func (s *Server) Run(ctx context.Context) (*referee.Result, error) {
	acceptCtx, stopAccept := context.WithCancel(ctx)
	go s.acceptLoop(acceptCtx)

	var admitted []*candidate
	started := false
	for period := 0; period < s.nPeriods && !started; period++ {
		deadline := time.After(s.waitingPeriod)
	periodLoop:
		for {
			select {
			case c := <-s.admit:
				admitted = append(admitted, c)
				if s.debug {
					s.log.Printf("signup: admitted %s as %q (%d/%d)", c.id, c.name, len(admitted), s.maxToStart)
				}
			case <-deadline:
				break periodLoop
			case <-ctx.Done():
				stopAccept()
				closeAll(admitted)
				return nil, ctx.Err()
			}
		}
		if len(admitted) >= s.minToStart {
			started = true
			break
		}
		if s.debug {
			s.log.Printf("signup: period %d ended with %d players, want >= %d", period+1, len(admitted), s.minToStart)
		}
	}
	stopAccept()

	if !started {
		if s.debug {
			s.log.Printf("signup: giving up after %d periods with %d players", s.nPeriods, len(admitted))
		}
		closeAll(admitted)
		return &referee.Result{}, nil
	}

	if len(admitted) > s.maxToStart {
		closeAll(admitted[s.maxToStart:])
		admitted = admitted[:s.maxToStart]
	}
	return s.play(ctx, admitted)
}

// acceptLoop accepts connections until ctx is canceled, at which
// point it closes the listener to unblock the in-flight Accept call.
func (s *Server) acceptLoop(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.debug {
				s.log.Printf("signup: accept loop ending: %v", err)
			}
			return
		}
		go s.handshake(ctx, conn)
	}
}

// handshake reads exactly one JSON value from conn within
// handshakeTimeout and validates it as a name. On success it offers
// the connection to the admission loop; on any failure (timeout, bad
// JSON, bad type, bad name, or the window having already closed) the
// socket is closed.
func (s *Server) handshake(ctx context.Context, conn net.Conn) {
	hctx, cancel := context.WithTimeout(ctx, s.handshakeTimeout)
	defer cancel()

	stream := remote.NewStream(conn)
	type outcome struct {
		name string
		err  error
	}
	readC := make(chan outcome, 1)
	go func() {
		var raw json.RawMessage
		if err := stream.ReadValue(&raw); err != nil {
			readC <- outcome{err: err}
			return
		}
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			readC <- outcome{err: err}
			return
		}
		readC <- outcome{name: name}
	}()

	select {
	case o := <-readC:
		if o.err != nil || !namePattern.MatchString(o.name) {
			if s.debug {
				s.log.Printf("signup: rejecting connection: %v", o.err)
			}
			conn.Close()
			return
		}
		c := &candidate{id: uuid.New(), name: o.name, stream: stream, conn: conn}
		select {
		case s.admit <- c:
		case <-hctx.Done():
			conn.Close()
		}
	case <-hctx.Done():
		conn.Close()
	}
}

// play builds a board for the frozen roster and runs it to
// completion under a single referee.
func (s *Server) play(ctx context.Context, admitted []*candidate) (*referee.Result, error) {
	names := make([]string, len(admitted))
	for i, c := range admitted {
		names[i] = c.name
	}
	b, playerDetails, err := buildGame(names, s.shuffle)
	if err != nil {
		closeAll(admitted)
		return nil, fmt.Errorf("signup: %w", err)
	}
	st, err := state.New(b, playerDetails)
	if err != nil {
		closeAll(admitted)
		return nil, fmt.Errorf("signup: %w", err)
	}

	pool := player.NewPool(s.poolSize)
	defer pool.Close()

	entries := make([]referee.Entry, len(admitted))
	for i, c := range admitted {
		c := c
		rp := remote.NewRemotePlayer(c.stream)
		entries[i] = referee.Entry{
			Name:   c.name,
			Player: player.NewSafePlayer(rp, pool, s.refereeCfg.TurnTimeout, func() { c.conn.Close() }),
		}
	}

	refereeCfg := s.refereeCfg
	refereeCfg.TournamentID = uuid.New()
	ref, err := refereeCfg.New(st, entries, s.observers)
	if err != nil {
		closeAll(admitted)
		return nil, fmt.Errorf("signup: %w", err)
	}

	if s.debug {
		s.log.Printf("signup: tournament %s starting with %d players", refereeCfg.TournamentID, len(admitted))
	}
	result, err := ref.Run(ctx)
	closeAll(admitted)
	if s.debug && err == nil {
		s.log.Printf("signup: tournament %s finished: winners=%v cheaters=%v", refereeCfg.TournamentID, result.Winners, result.Cheaters)
	}
	return result, err
}

func closeAll(candidates []*candidate) {
	for _, c := range candidates {
		c.conn.Close()
	}
}
