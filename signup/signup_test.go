package signup

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/eholt/labyrinth/referee"
	"github.com/eholt/labyrinth/remote"
)

func refereeConfigForTest() referee.Config {
	return referee.Config{
		Log:          testLogger{},
		TurnTimeout:  200 * time.Millisecond,
		SetupTimeout: 200 * time.Millisecond,
		WinTimeout:   200 * time.Millisecond,
		MaxRounds:    2,
	}
}

type testLogger struct{ t *testing.T }

func (l testLogger) Printf(format string, v ...interface{}) {
	if l.t != nil {
		l.t.Logf(format, v...)
	}
}

func identityShuffle(n int, swap func(i, j int)) {}

func TestBuildGameDistinctTreasuresAndPositions(t *testing.T) {
	b, players, err := buildGame([]string{"alice", "bob", "carol"}, identityShuffle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("len(players) = %d, want 3", len(players))
	}
	seen := map[string]bool{}
	positions := map[string]bool{}
	for _, p := range players {
		if seen[p.Color] {
			t.Errorf("duplicate color %q", p.Color)
		}
		seen[p.Color] = true
		if !b.Stationary(p.Home.Row, p.Home.Col) {
			t.Errorf("home %v is not a stationary cell", p.Home)
		}
		if !b.Stationary(p.Goal.Row, p.Goal.Col) {
			t.Errorf("goal %v is not a stationary cell", p.Goal)
		}
		if p.Home == p.Goal {
			t.Errorf("player has home == goal: %v", p.Home)
		}
		homeKey := p.Home.String()
		goalKey := p.Goal.String()
		if positions[homeKey] {
			t.Errorf("duplicate home position %v", p.Home)
		}
		if positions[goalKey] {
			t.Errorf("duplicate goal position %v", p.Goal)
		}
		positions[homeKey] = true
		positions[goalKey] = true
	}
}

func TestBuildGameRejectsTooManyPlayers(t *testing.T) {
	names := make([]string, len(palette)+1)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	if _, _, err := buildGame(names, identityShuffle); err == nil {
		t.Fatal("expected an error for a roster exceeding the color palette")
	}
}

// TestSignupGivesUpWithTooFewPlayers checks the admission-timing
// rule: with nobody connecting, every waiting period elapses and Run
// returns an empty result without blocking forever.
func TestSignupGivesUpWithTooFewPlayers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer ln.Close()

	cfg := Config{
		Log:           testLogger{t},
		WaitingPeriod: 20 * time.Millisecond,
		NPeriods:      2,
	}
	s, err := cfg.New(ln)
	if err != nil {
		t.Fatalf("unexpected error creating server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if len(result.Winners) != 0 || len(result.Cheaters) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

// fakeWireClient dials addr, sends name as the handshake value, then
// answers every subsequent call by passing its turn and
// acknowledging setUp/win, until the connection closes.
func fakeWireClient(t *testing.T, addr, name string) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Errorf("dialing: %v", err)
		return
	}
	stream := remote.NewStream(conn)
	if err := stream.WriteValue(name); err != nil {
		t.Errorf("writing name: %v", err)
		return
	}
	for {
		raw, err := stream.ReadRaw()
		if err != nil {
			return
		}
		mc, err := remote.ParseMethodCall(raw)
		if err != nil {
			return
		}
		switch mc.Method {
		case remote.MethodSetUp, remote.MethodWin:
			if err := stream.WriteValue(remote.EncodeVoid); err != nil {
				return
			}
		case remote.MethodTakeTurn:
			if err := stream.WriteValue("PASS"); err != nil {
				return
			}
		case remote.MethodName_:
			if err := stream.WriteValue(name); err != nil {
				return
			}
		default:
			return
		}
	}
}

// TestSignupAdmitsAndPlaysGame exercises the full handoff: two real
// TCP clients handshake in, the roster freezes once MinToStart is
// met, and a complete (if trivial, all-pass) game runs to its finish.
// With the identity shuffle the first player's home (1,1) is 4 away
// (squared) from its goal (1,3) and the second's home (1,5) is 20 away
// from its goal (3,1), so exactly one player wins.
func TestSignupAdmitsAndPlaysGame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer ln.Close()

	cfg := Config{
		Log:              testLogger{t},
		WaitingPeriod:    300 * time.Millisecond,
		HandshakeTimeout: time.Second,
		MinToStart:       2,
		MaxToStart:       2,
		NPeriods:         2,
		RefereeCfg:       refereeConfigForTest(),
		Shuffle:          identityShuffle,
	}
	s, err := cfg.New(ln)
	if err != nil {
		t.Fatalf("unexpected error creating server: %v", err)
	}

	addr := ln.Addr().String()
	go fakeWireClient(t, addr, "alice")
	go fakeWireClient(t, addr, "bob")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if len(result.Cheaters) != 0 {
		t.Errorf("Cheaters = %v, want none", result.Cheaters)
	}
	if len(result.Winners) != 1 {
		t.Errorf("Winners = %v, want exactly the player closer to their goal", result.Winners)
	}
}

// TestSignupConfigDefaults checks that a zero-value Config (beyond
// the required Log) is filled in with the documented defaults.
func TestSignupConfigDefaults(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer ln.Close()
	cfg := Config{Log: testLogger{t}}
	s, err := cfg.New(ln)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.waitingPeriod != defaultWaitingPeriod {
		t.Errorf("waitingPeriod = %v, want default", s.waitingPeriod)
	}
	if s.maxToStart != defaultMaxToStart {
		t.Errorf("maxToStart = %v, want default", s.maxToStart)
	}
}
