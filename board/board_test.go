package board

import (
	"testing"

	"github.com/eholt/labyrinth/gem"
	"github.com/eholt/labyrinth/geom"
)

func bar() geom.Shape  { s, _ := geom.NewShapeFromConnector('─'); return s }
func line() geom.Shape { s, _ := geom.NewShapeFromConnector('│'); return s }
func cross() geom.Shape { s, _ := geom.NewShapeFromConnector('┼'); return s }

// newTestBoard builds a rows x cols board of cross tiles (which
// connect in every direction, so shifts are easy to reason about)
// with distinct numbered gem pairs, plus a spare line tile.
func newTestBoard(t *testing.T, rows, cols int) *Board {
	t.Helper()
	grid := make([][]Tile, rows)
	n := 0
	for r := 0; r < rows; r++ {
		grid[r] = make([]Tile, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = Tile{Shape: cross(), Treasure: gem.Pair{A: gem.Gem(itoaGem(n)), B: gem.Gem(itoaGem(n + 1))}}
			n += 2
		}
	}
	spare := Tile{Shape: line(), Treasure: gem.Pair{A: gem.Gem(itoaGem(n)), B: gem.Gem(itoaGem(n + 1))}}
	cfg := Config{Rows: rows, Cols: cols}
	b, err := cfg.New(grid, spare, false)
	if err != nil {
		t.Fatalf("unexpected error building test board: %v", err)
	}
	return b
}

func itoaGem(n int) string {
	digits := "abcdefghijklmnopqrstuvwxyz"
	return string(digits[n%len(digits)]) + string(digits[(n/len(digits))%len(digits)])
}

func TestShiftInsertRoundTrip(t *testing.T) {
	// A shift followed by its reverse restores the board and the spare.
	b := newTestBoard(t, 7, 7)
	spareBefore := b.Spare()
	before := make([][]Tile, b.Rows)
	for r, row := range b.grid {
		before[r] = append([]Tile(nil), row...)
	}
	if _, err := b.ShiftInsert(0, geom.Right); err != nil {
		t.Fatalf("ShiftInsert(0, RIGHT) returned error: %v", err)
	}
	if _, err := b.ShiftInsert(0, geom.Left); err != nil {
		t.Fatalf("ShiftInsert(0, LEFT) returned error: %v", err)
	}
	for r := range before {
		for c := range before[r] {
			if before[r][c] != b.grid[r][c] {
				t.Errorf("tile at (%d,%d) = %+v after round trip, want %+v", r, c, b.grid[r][c], before[r][c])
			}
		}
	}
	if b.Spare() != spareBefore {
		t.Errorf("spare after round trip = %+v, want %+v", b.Spare(), spareBefore)
	}
}

func TestShiftInsertRejectsOddIndex(t *testing.T) {
	b := newTestBoard(t, 7, 7)
	if _, err := b.ShiftInsert(1, geom.Right); err != ErrInvalidSlide {
		t.Errorf("ShiftInsert(1, RIGHT) = %v, want ErrInvalidSlide", err)
	}
}

func TestShiftInsertTransportsPlayer(t *testing.T) {
	// A player on the leading tile of a shifted row wraps to the
	// inserted position.
	b := newTestBoard(t, 7, 7)
	tr, err := b.ShiftInsert(0, geom.Right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Removed != (geom.Position{Row: 0, Col: 6}) {
		t.Errorf("Removed = %v, want (0,6)", tr.Removed)
	}
	if tr.Inserted != (geom.Position{Row: 0, Col: 0}) {
		t.Errorf("Inserted = %v, want (0,0)", tr.Inserted)
	}
	if got := tr.Updated[geom.Position{Row: 0, Col: 3}]; got != (geom.Position{Row: 0, Col: 4}) {
		t.Errorf("Updated[(0,3)] = %v, want (0,4)", got)
	}
}

func TestStationary(t *testing.T) {
	b := newTestBoard(t, 7, 7)
	if !b.Stationary(1, 1) {
		t.Error("Stationary(1,1) = false, want true (both odd)")
	}
	if b.Stationary(0, 1) {
		t.Error("Stationary(0,1) = true, want false (row is slideable)")
	}
}

func TestReachableIsolatedLine(t *testing.T) {
	b := newTestBoard(t, 7, 7)
	b.grid[1][1] = Tile{Shape: line()}
	for _, p := range []geom.Position{{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}} {
		b.grid[p.Row][p.Col] = Tile{Shape: bar()}
	}
	got := b.Reachable(geom.Position{Row: 1, Col: 1})
	if len(got) != 1 {
		t.Errorf("Reachable((1,1)) = %v, want just itself", got)
	}
}
