package geom

import "errors"

// Shape describes which of a tile's four edges connect to a neighbor.
// Rotation by one quarter turn permutes (top,right,bottom,left) into
// (left,top,right,bottom), matching a 90 degree clockwise turn.
type Shape struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// connectorTable maps every one of the 11 canonical connectors (4
// corners, 2 lines, 4 T-shapes, 1 cross) to its unrotated Shape.
var connectorTable = map[rune]Shape{
	'└': {Top: true, Right: true},
	'┌': {Right: true, Bottom: true},
	'┐': {Bottom: true, Left: true},
	'┘': {Left: true, Top: true},
	'│': {Top: true, Bottom: true},
	'─': {Left: true, Right: true},
	'┬': {Left: true, Right: true, Bottom: true},
	'┤': {Top: true, Bottom: true, Left: true},
	'┴': {Left: true, Right: true, Top: true},
	'├': {Top: true, Bottom: true, Right: true},
	'┼': {Top: true, Right: true, Bottom: true, Left: true},
}

// NewShapeFromConnector returns the Shape for one of the 11 canonical
// box-drawing connector characters.
func NewShapeFromConnector(r rune) (Shape, error) {
	s, ok := connectorTable[r]
	if !ok {
		return Shape{}, errors.New("unknown connector: " + string(r))
	}
	return s, nil
}

// Has reports whether the shape connects on the given edge.
func (s Shape) Has(d Direction) bool {
	switch d {
	case Up:
		return s.Top
	case Right:
		return s.Right
	case Down:
		return s.Bottom
	case Left:
		return s.Left
	default:
		return false
	}
}

// Rotate returns the shape after the given number of 90 degree
// clockwise rotations (negative values rotate counter-clockwise).
func (s Shape) Rotate(quarterTurns int) Shape {
	n := ((quarterTurns % 4) + 4) % 4
	for i := 0; i < n; i++ {
		s = Shape{Top: s.Left, Right: s.Top, Bottom: s.Right, Left: s.Bottom}
	}
	return s
}

// Connector returns the box-drawing character whose shape is exactly
// s. Each of the 11 connectors has a distinct edge set, so the match
// is unique.
func (s Shape) Connector() (rune, error) {
	for r, base := range connectorTable {
		if base == s {
			return r, nil
		}
	}
	return 0, errors.New("shape does not correspond to any canonical connector")
}

// MarshalJSON implements json.Marshaler, writing the shape as its
// connector character.
func (s Shape) MarshalJSON() ([]byte, error) {
	r, err := s.Connector()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + string(r) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Shape) UnmarshalJSON(data []byte) error {
	if len(data) < 3 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("shape connector must be a quoted string")
	}
	runes := []rune(string(data[1 : len(data)-1]))
	if len(runes) != 1 {
		return errors.New("shape connector must be a single character")
	}
	parsed, err := NewShapeFromConnector(runes[0])
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
