package state

import (
	"encoding/json"
	"errors"

	"github.com/eholt/labyrinth/board"
	"github.com/eholt/labyrinth/geom"
)

// jsonPlayerDetails mirrors the wire PublicPlayer schema.
type jsonPlayerDetails struct {
	Home    geom.Position `json:"home"`
	Current geom.Position `json:"current"`
	Color   string        `json:"color"`
}

// MarshalJSON implements json.Marshaler.
func (p PlayerDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPlayerDetails{Home: p.Home, Current: p.Current, Color: p.Color})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PlayerDetails) UnmarshalJSON(data []byte) error {
	var jp jsonPlayerDetails
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	p.Home, p.Current, p.Color = jp.Home, jp.Current, jp.Color
	return nil
}

// jsonRedacted mirrors the wire RedactedState schema:
// {"board":Board,"spare":Tile,"plmt":[PublicPlayer,...],"last":[int,Direction]|null}.
type jsonRedacted struct {
	Board   *board.Board    `json:"board"`
	Spare   board.Tile      `json:"spare"`
	Players []PlayerDetails `json:"plmt"`
	Last    json.RawMessage `json:"last"`
}

// MarshalJSON implements json.Marshaler for the wire RedactedState schema.
func (r Redacted) MarshalJSON() ([]byte, error) {
	last := []byte("null")
	if r.Last != nil {
		encoded, err := json.Marshal([]interface{}{r.Last.Index, r.Last.Direction})
		if err != nil {
			return nil, err
		}
		last = encoded
	}
	return json.Marshal(jsonRedacted{
		Board:   r.Board,
		Spare:   r.Spare,
		Players: r.Players,
		Last:    last,
	})
}

// UnmarshalJSON implements json.Unmarshaler for the wire RedactedState schema.
func (r *Redacted) UnmarshalJSON(data []byte) error {
	var jr jsonRedacted
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	r.Board = jr.Board
	r.Spare = jr.Spare
	r.Players = jr.Players
	if len(jr.Last) == 0 || string(jr.Last) == "null" {
		r.Last = nil
		return nil
	}
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(jr.Last, &tuple); err != nil {
		return errors.New("last move must be null or a [index, direction] tuple: " + err.Error())
	}
	var last LastMove
	if err := json.Unmarshal(tuple[0], &last.Index); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[1], &last.Direction); err != nil {
		return err
	}
	r.Last = &last
	return nil
}
