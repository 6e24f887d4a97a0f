package signup

import (
	"fmt"

	"github.com/eholt/labyrinth/board"
	"github.com/eholt/labyrinth/gem"
	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
)

// boardRows and boardCols are the dimensions of a generated board.
// 7x7 is the classic Labyrinth grid: every other row and column is
// slideable, leaving a 3x3 grid of stationary cells for homes/goals.
const (
	boardRows = 7
	boardCols = 7
)

// connectors is the 11 canonical connector shapes every generated
// tile is drawn from, the same catalogue geom.Shape recognizes for
// JSON encoding.
var connectors = []rune{'└', '┌', '┐', '┘', '│', '─', '┬', '┤', '┴', '├', '┼'}

// palette is the closed set of colors assigned to players in arrival
// order; its length is the hard cap on roster size independent of
// maxToStart, since a color must be unique per player.
var palette = []string{"red", "blue", "green", "yellow", "purple", "orange"}

// ShuffleFunc randomizes the order of n items by repeatedly invoking
// swap, so board generation stays deterministic and testable under an
// injected shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// buildGame procedurally builds a board and a matching roster of
// RefereePlayerDetails for names, in arrival order. Every tile
// (including the spare) is assigned a distinct gem pair, and every
// player is assigned a distinct stationary home, a distinct
// stationary treasure goal, and a color from the closed palette.
func buildGame(names []string, shuffle ShuffleFunc) (*board.Board, []state.RefereePlayerDetails, error) {
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("building game: at least one player required")
	}
	if len(names) > len(palette) {
		return nil, nil, fmt.Errorf("building game: %d players exceeds the %d-color palette", len(names), len(palette))
	}

	tileCount := boardRows*boardCols + 1 // +1 for the spare
	pairs, err := distinctPairs(tileCount, shuffle)
	if err != nil {
		return nil, nil, fmt.Errorf("building game: %w", err)
	}

	grid := make([][]board.Tile, boardRows)
	next := 0
	shapeOrder := make([]int, boardRows*boardCols)
	for i := range shapeOrder {
		shapeOrder[i] = i % len(connectors)
	}
	shuffle(len(shapeOrder), func(i, j int) { shapeOrder[i], shapeOrder[j] = shapeOrder[j], shapeOrder[i] })
	for r := 0; r < boardRows; r++ {
		grid[r] = make([]board.Tile, boardCols)
		for c := 0; c < boardCols; c++ {
			shape, err := geom.NewShapeFromConnector(connectors[shapeOrder[next]])
			if err != nil {
				return nil, nil, fmt.Errorf("building game: %w", err)
			}
			grid[r][c] = board.Tile{Shape: shape, Treasure: pairs[next]}
			next++
		}
	}
	spareShape, err := geom.NewShapeFromConnector('┼')
	if err != nil {
		return nil, nil, fmt.Errorf("building game: %w", err)
	}
	spare := board.Tile{Shape: spareShape, Treasure: pairs[next]}

	cfg := board.Config{Rows: boardRows, Cols: boardCols}
	b, err := cfg.New(grid, spare, true)
	if err != nil {
		return nil, nil, fmt.Errorf("building game: %w", err)
	}

	stationary := stationaryPositions(b)
	if len(stationary) < 2*len(names) {
		return nil, nil, fmt.Errorf("building game: board has only %d stationary cells for %d players", len(stationary), len(names))
	}
	shuffle(len(stationary), func(i, j int) { stationary[i], stationary[j] = stationary[j], stationary[i] })

	players := make([]state.RefereePlayerDetails, len(names))
	for i := range names {
		home := stationary[2*i]
		goal := stationary[2*i+1]
		players[i] = state.RefereePlayerDetails{
			PlayerDetails: state.PlayerDetails{
				Home:    home,
				Current: home,
				Color:   palette[i],
			},
			Goal: goal,
		}
	}
	return b, players, nil
}

// stationaryPositions returns every cell on b whose row and column
// are both odd, in row-major order, the cells a shift-insert never
// disturbs and so the only ones eligible to host a home or a goal.
func stationaryPositions(b *board.Board) []geom.Position {
	var out []geom.Position
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Stationary(r, c) {
				out = append(out, geom.Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// distinctPairs draws n distinct unordered gem pairs from the closed
// catalogue's C(len(names),2) combinations, then shuffles their
// assignment order so repeated games don't tile treasures
// identically.
func distinctPairs(n int, shuffle ShuffleFunc) ([]gem.Pair, error) {
	names := gem.Names()
	var all []gem.Pair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			all = append(all, gem.Pair{A: gem.Gem(names[i]), B: gem.Gem(names[j])})
		}
	}
	if n > len(all) {
		return nil, fmt.Errorf("need %d distinct treasure pairs but the catalogue only yields %d", n, len(all))
	}
	shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	pairs := append([]gem.Pair(nil), all[:n]...)
	if !gem.Distinct(pairs) {
		return nil, fmt.Errorf("generated non-distinct treasure pairs")
	}
	return pairs, nil
}
