// Package geom holds the primitive geometry of the Labyrinth board: grid
// positions, cardinal directions, and tile connector shapes.
package geom

import (
	"encoding/json"
	"fmt"
)

// Position is a (row, column) grid coordinate.
type Position struct {
	Row int
	Col int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns the position offset by the given row/column delta.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// InBounds reports whether the position lies within a grid of the given
// height and width.
func (p Position) InBounds(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// jsonPosition mirrors the wire Coordinate schema: {"row#":int,"column#":int}.
type jsonPosition struct {
	Row int `json:"row#"`
	Col int `json:"column#"`
}

// MarshalJSON implements json.Marshaler, writing the position as a
// wire Coordinate.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPosition{Row: p.Row, Col: p.Col})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Position) UnmarshalJSON(data []byte) error {
	var jp jsonPosition
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	p.Row, p.Col = jp.Row, jp.Col
	return nil
}
