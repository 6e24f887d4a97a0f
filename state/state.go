// Package state owns the mutable game state shared by a Labyrinth
// referee: the board, the players, whose turn it is, and each
// player's progress toward winning.
package state

import (
	"errors"

	"github.com/eholt/labyrinth/board"
	"github.com/eholt/labyrinth/geom"
)

type (
	// PlayerDetails is the public information about a player: where
	// their home is, where they currently stand, and what color
	// represents them on the board.
	PlayerDetails struct {
		Home    geom.Position
		Current geom.Position
		Color   string
	}

	// RefereePlayerDetails adds the private fields only the referee
	// may see: the player's current goal and whether that goal is
	// their last one (home, after the treasure has been reached).
	RefereePlayerDetails struct {
		PlayerDetails
		Goal           geom.Position
		GoalIsUltimate bool
	}

	// slide records one applied (non-pass) slide, used to forbid the
	// exact reverse on the following turn.
	slide struct {
		Index     int
		Direction geom.Direction
	}

	// State is the referee's single mutable object: the board, the
	// surviving players, whose turn it is, and move history.
	State struct {
		Board        *board.Board
		Players      []RefereePlayerDetails
		ActiveIndex  int
		history      []slide
		goalsReached []int
	}
)

// winningGoalsReached is the number of goals a player must reach to
// win: the initial treasure, then home.
const winningGoalsReached = 2

// New creates a State that owns the given board and players. The
// board and players are taken by reference/value as given; callers
// should not mutate them afterward except through State's methods.
func New(b *board.Board, players []RefereePlayerDetails) (*State, error) {
	if len(players) == 0 {
		return nil, errors.New("state requires at least one player")
	}
	return &State{
		Board:        b,
		Players:      players,
		ActiveIndex:  0,
		goalsReached: make([]int, len(players)),
	}, nil
}

// ErrInvalidRotation is returned by RotateSpare for a non-multiple-of-90 value.
var ErrInvalidRotation = errors.New("rotation degrees must be a multiple of 90")

// RotateSpare rotates the spare tile clockwise by the given number of
// degrees, which must be a multiple of 90.
func (s *State) RotateSpare(degrees int) error {
	if degrees%90 != 0 {
		return ErrInvalidRotation
	}
	s.Board.RotateSpare((degrees / 90) % 4)
	return nil
}

// ShiftInsert forwards to the board, then transports every player's
// current position per the resulting PositionTransition, and records
// the slide in history for the no-reversal rule.
func (s *State) ShiftInsert(index int, direction geom.Direction) error {
	tr, err := s.Board.ShiftInsert(index, direction)
	if err != nil {
		return err
	}
	for i := range s.Players {
		cur := s.Players[i].Current
		switch {
		case cur == tr.Removed:
			s.Players[i].Current = tr.Inserted
		default:
			if moved, ok := tr.Updated[cur]; ok {
				s.Players[i].Current = moved
			}
		}
	}
	s.history = append(s.history, slide{Index: index, Direction: direction})
	return nil
}

// lastSlide returns the most recently applied non-pass slide, or nil
// if no slide has happened yet.
func (s *State) lastSlide() *slide {
	if len(s.history) == 0 {
		return nil
	}
	return &s.history[len(s.history)-1]
}

// LegalSlide reports whether (index, direction) may be played this
// turn: the index must be in range and slideable for the chosen axis,
// and the move must not be the exact reverse of the most recently
// applied slide.
func (s *State) LegalSlide(index int, direction geom.Direction) bool {
	if !board.Slideable(index) {
		return false
	}
	switch direction {
	case geom.Left, geom.Right:
		if index >= s.Board.Rows {
			return false
		}
	case geom.Up, geom.Down:
		if index >= s.Board.Cols {
			return false
		}
	}
	if last := s.lastSlide(); last != nil && last.Index == index && last.Direction == direction.Opposite() {
		return false
	}
	return true
}

// ErrIllegalDestination is returned by MoveActiveTo when destination
// is not reachable from the active player's current position.
var ErrIllegalDestination = errors.New("destination is not reachable")

// MoveActiveTo walks the active player from their current position to
// destination, completing the rotate-slide-move triple a turn
// applies. destination must be reachable from (and distinct from) the
// active player's
// current position, typically re-checked here after ShiftInsert has
// already transported the player to their post-slide position.
func (s *State) MoveActiveTo(destination geom.Position) error {
	i := s.ActiveIndex
	current := s.Players[i].Current
	if current == destination {
		return ErrIllegalDestination
	}
	reachable := s.Board.Reachable(current)
	if _, ok := reachable[destination]; !ok {
		return ErrIllegalDestination
	}
	s.Players[i].Current = destination
	return nil
}

// LegalDestinations returns the set of positions the active player
// may move to this turn: everywhere reachable from their current
// position, excluding the current position itself (a turn must move).
func (s *State) LegalDestinations() map[geom.Position]struct{} {
	active := s.Players[s.ActiveIndex].Current
	reachable := s.Board.Reachable(active)
	delete(reachable, active)
	return reachable
}

// nextGoal returns the given player's current target: their
// treasure goal until reached, then their home.
func (s *State) nextGoal(playerIndex int) geom.Position {
	p := s.Players[playerIndex]
	if s.goalsReached[playerIndex] == 0 {
		return p.Goal
	}
	return p.Home
}

// ActiveIsAtGoal reports whether the active player's current position
// equals their next goal. If so, it increments their goals-reached
// counter as a side effect and returns true; it must be called at
// most once per turn.
func (s *State) ActiveIsAtGoal() bool {
	i := s.ActiveIndex
	if s.Players[i].Current != s.nextGoal(i) {
		return false
	}
	s.goalsReached[i]++
	return true
}

// AssignActiveHomeGoal points the active player at their final goal,
// their home, and marks the goal ultimate so no further goal is ever
// assigned to them. Returns the assigned position. Called by the
// referee after the player reaches their treasure.
func (s *State) AssignActiveHomeGoal() geom.Position {
	i := s.ActiveIndex
	s.Players[i].Goal = s.Players[i].Home
	s.Players[i].GoalIsUltimate = true
	return s.Players[i].Goal
}

// ActiveHasWon reports whether the active player has reached both
// their treasure and their home.
func (s *State) ActiveHasWon() bool {
	return s.goalsReached[s.ActiveIndex] >= winningGoalsReached
}

// GoalsReached returns how many goals the player at the given index
// has reached.
func (s *State) GoalsReached(playerIndex int) int {
	return s.goalsReached[playerIndex]
}

// squaredDistance is the squared Euclidean distance between two
// positions, used to rank closeness to a goal without a sqrt.
func squaredDistance(a, b geom.Position) int {
	dRow := a.Row - b.Row
	dCol := a.Col - b.Col
	return dRow*dRow + dCol*dCol
}

// ClosestToVictory returns the indices of the players who have
// reached the most goals and, among those, are closest (by squared
// distance) to their next goal. Ties are all included. Returns empty
// only if no players remain.
func (s *State) ClosestToVictory() []int {
	if len(s.Players) == 0 {
		return nil
	}
	maxGoals := s.goalsReached[0]
	for _, g := range s.goalsReached {
		if g > maxGoals {
			maxGoals = g
		}
	}
	var leaders []int
	for i := range s.Players {
		if s.goalsReached[i] == maxGoals {
			leaders = append(leaders, i)
		}
	}
	best := squaredDistance(s.Players[leaders[0]].Current, s.nextGoal(leaders[0]))
	for _, i := range leaders[1:] {
		if d := squaredDistance(s.Players[i].Current, s.nextGoal(i)); d < best {
			best = d
		}
	}
	var closest []int
	for _, i := range leaders {
		if squaredDistance(s.Players[i].Current, s.nextGoal(i)) == best {
			closest = append(closest, i)
		}
	}
	return closest
}

// EjectPlayer removes the player at the given index from the state
// (they cheated, timed out, or disconnected). Removing index shifts
// every later player down by one, so an ActiveIndex pointing past the
// ejected slot is shifted along with them; an ActiveIndex pointing at
// the ejected slot itself is left in place, since the next surviving
// player has now slid into it. The result is clamped to stay in range
// if the last player was ejected.
func (s *State) EjectPlayer(index int) {
	s.Players = append(s.Players[:index], s.Players[index+1:]...)
	s.goalsReached = append(s.goalsReached[:index], s.goalsReached[index+1:]...)
	if s.ActiveIndex > index {
		s.ActiveIndex--
	}
	if s.ActiveIndex >= len(s.Players) {
		s.ActiveIndex = 0
	}
}

// Advance moves ActiveIndex to the next surviving player.
func (s *State) Advance() {
	if len(s.Players) == 0 {
		return
	}
	s.ActiveIndex = (s.ActiveIndex + 1) % len(s.Players)
}

// WithTrialMove performs a rotate+slide on a deep copy of the state
// and invokes fn with the copy, leaving the receiver untouched. The
// referee uses it to check destination legality without mutating live
// state.
func (s *State) WithTrialMove(degrees, index int, direction geom.Direction, fn func(trial *State)) error {
	trial := s.Clone()
	if err := trial.RotateSpare(degrees); err != nil {
		return err
	}
	if err := trial.ShiftInsert(index, direction); err != nil {
		return err
	}
	fn(trial)
	return nil
}

// Clone returns a deep copy of the state, suitable for trial moves or
// for building observer/redacted snapshots.
func (s *State) Clone() *State {
	clonedBoard := s.Board.Clone()
	players := append([]RefereePlayerDetails(nil), s.Players...)
	goalsReached := append([]int(nil), s.goalsReached...)
	history := append([]slide(nil), s.history...)
	return &State{
		Board:        clonedBoard,
		Players:      players,
		ActiveIndex:  s.ActiveIndex,
		history:      history,
		goalsReached: goalsReached,
	}
}
