package console

import (
	"strings"
	"testing"

	"github.com/eholt/labyrinth/state"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestObserverNotifyLogsSummary(t *testing.T) {
	l := &recordingLogger{}
	o := New(l)
	snapshot := &state.Redacted{
		Players: []state.PlayerDetails{{Color: "red"}, {}, {}},
	}
	o.Notify(snapshot)
	if len(l.lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(l.lines))
	}
	if !strings.Contains(l.lines[0], "players") {
		t.Errorf("logged line = %q, want it to mention players", l.lines[0])
	}
}
