package board

import (
	"encoding/json"
	"errors"

	"github.com/eholt/labyrinth/gem"
	"github.com/eholt/labyrinth/geom"
)

// jsonTile mirrors the wire Tile schema.
type jsonTile struct {
	TileKey geom.Shape `json:"tilekey"`
	Image1  gem.Gem    `json:"1-image"`
	Image2  gem.Gem    `json:"2-image"`
}

// MarshalJSON implements json.Marshaler for the wire Tile schema.
func (t Tile) MarshalJSON() ([]byte, error) {
	jt := jsonTile{TileKey: t.Shape, Image1: t.Treasure.A, Image2: t.Treasure.B}
	return json.Marshal(jt)
}

// UnmarshalJSON implements json.Unmarshaler for the wire Tile schema.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var jt jsonTile
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	t.Shape = jt.TileKey
	t.Treasure = gem.Pair{A: jt.Image1, B: jt.Image2}
	return nil
}

// jsonBoard mirrors the wire Board schema: parallel connectors and
// treasures grids instead of a grid of Tile objects.
type jsonBoard struct {
	Connectors [][]geom.Shape `json:"connectors"`
	Treasures  [][][2]gem.Gem `json:"treasures"`
}

// MarshalJSON implements json.Marshaler for the wire Board schema.
func (b Board) MarshalJSON() ([]byte, error) {
	jb := jsonBoard{
		Connectors: make([][]geom.Shape, b.Rows),
		Treasures:  make([][][2]gem.Gem, b.Rows),
	}
	for r, row := range b.grid {
		jb.Connectors[r] = make([]geom.Shape, b.Cols)
		jb.Treasures[r] = make([][2]gem.Gem, b.Cols)
		for c, t := range row {
			jb.Connectors[r][c] = t.Shape
			jb.Treasures[r][c] = [2]gem.Gem{t.Treasure.A, t.Treasure.B}
		}
	}
	return json.Marshal(jb)
}

// UnmarshalJSON implements json.Unmarshaler for the wire Board
// schema. It does not populate the spare tile, which travels
// separately on the wire (see RedactedState).
func (b *Board) UnmarshalJSON(data []byte) error {
	var jb jsonBoard
	if err := json.Unmarshal(data, &jb); err != nil {
		return err
	}
	rows := len(jb.Connectors)
	if rows == 0 || len(jb.Connectors) != len(jb.Treasures) {
		return errors.New("board connectors/treasures dimension mismatch")
	}
	cols := len(jb.Connectors[0])
	grid := make([][]Tile, rows)
	for r := range jb.Connectors {
		if len(jb.Connectors[r]) != cols || len(jb.Treasures[r]) != cols {
			return errors.New("board rows must all have equal width")
		}
		grid[r] = make([]Tile, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = Tile{
				Shape:    jb.Connectors[r][c],
				Treasure: gem.Pair{A: jb.Treasures[r][c][0], B: jb.Treasures[r][c][1]},
			}
		}
	}
	b.Config = Config{Rows: rows, Cols: cols}
	b.grid = grid
	return nil
}
