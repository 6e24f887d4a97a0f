package state

import (
	"github.com/eholt/labyrinth/board"
	"github.com/eholt/labyrinth/geom"
)

// LastMove records the most recent slide for inclusion in a redacted
// snapshot, or nil if no slide has happened yet.
type LastMove struct {
	Index     int
	Direction geom.Direction
}

// Redacted is a read-only snapshot safe to send to a client: the same
// board as the live state and its most recent slide (not the full
// move history), with every player's private goal fields stripped. Players are listed in turn order
// starting with the player the snapshot is for, so a client always
// finds its own record at index 0.
type Redacted struct {
	Board   *board.Board
	Spare   board.Tile
	Players []PlayerDetails
	Last    *LastMove
}

// CopyRedacted returns a snapshot of the state with all players'
// private goal fields removed. The board is deep-copied so the
// snapshot is an owned value: later mutation of the live state (a
// subsequent ShiftInsert) never reaches back into a snapshot already
// handed to a player or observer. The player list is rotated so the
// active player comes first; if activeIndex is non-nil, it is used in
// place of the state's own ActiveIndex (used by the referee to tell
// each player during setup which record is theirs).
func (s *State) CopyRedacted(activeIndex *int) *Redacted {
	idx := s.ActiveIndex
	if activeIndex != nil {
		idx = *activeIndex
	}
	n := len(s.Players)
	players := make([]PlayerDetails, 0, n)
	for k := 0; k < n; k++ {
		players = append(players, s.Players[(idx+k)%n].PlayerDetails)
	}
	var last *LastMove
	if ls := s.lastSlide(); ls != nil {
		last = &LastMove{Index: ls.Index, Direction: ls.Direction}
	}
	clonedBoard := s.Board.Clone()
	return &Redacted{
		Board:   clonedBoard,
		Spare:   clonedBoard.Spare(),
		Players: players,
		Last:    last,
	}
}
