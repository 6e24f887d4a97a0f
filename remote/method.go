package remote

import (
	"encoding/json"
	"errors"

	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
	"github.com/eholt/labyrinth/strategy"
)

// MethodName is one of the wire-recognized method names.
type MethodName string

// Wire method names.
const (
	MethodSetUp         MethodName = "setUp"
	MethodTakeTurn      MethodName = "takeTurn"
	MethodWin           MethodName = "win"
	MethodName_         MethodName = "name"
	MethodProposeBoard0 MethodName = "proposeBoard0"
)

type (
	// SetUpArgs is the decoded argument set for a setUp call.
	// Redacted is nil on every call after the first one (the wire
	// value was `false`, meaning "no new state, just a new goal").
	SetUpArgs struct {
		Redacted *state.Redacted
		Goal     geom.Position
	}

	// TakeTurnArgs is the decoded argument set for a takeTurn call.
	TakeTurnArgs struct {
		Redacted *state.Redacted
	}

	// WinArgs is the decoded argument set for a win call.
	WinArgs struct {
		DidWin bool
	}

	// NameArgs is the (empty) argument set for a name call.
	NameArgs struct{}

	// ProposeBoard0Args carries the raw arguments of a proposeBoard0
	// call. The board-proposal handshake belongs to external
	// harnesses; the core only needs to recognize and route the
	// method name, not interpret its payload, so its arguments stay
	// opaque.
	ProposeBoard0Args struct {
		Raw []json.RawMessage
	}

	// MethodCall is the tagged union of every call the wire protocol
	// can carry: Method names the call and exactly the matching
	// argument field is set. Go does not check a switch over Method
	// for exhaustiveness.
	MethodCall struct {
		Method        MethodName
		SetUp         *SetUpArgs
		TakeTurn      *TakeTurnArgs
		Win           *WinArgs
		Name          *NameArgs
		ProposeBoard0 *ProposeBoard0Args
	}
)

// ErrProtocol is returned when an inbound value fails schema
// validation or domain decoding at any stage of the pipeline.
var ErrProtocol = errors.New("protocol error")

// wireCall mirrors the wire Call format: [method_name, [arg0, arg1, ...]].
type wireCall struct {
	Method MethodName
	Args   []json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler for the 2-element
// [method_name, args] tuple.
func (c *wireCall) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return errors.Join(ErrProtocol, err)
	}
	if err := json.Unmarshal(tuple[0], &c.Method); err != nil {
		return errors.Join(ErrProtocol, err)
	}
	if err := json.Unmarshal(tuple[1], &c.Args); err != nil {
		return errors.Join(ErrProtocol, err)
	}
	return nil
}

// ParseMethodCall runs the full validation pipeline on a raw inbound
// JSON value: schema validate against the method's transport type,
// then domain deserialize into Board/State/Position/Move types.
func ParseMethodCall(raw json.RawMessage) (*MethodCall, error) {
	var wc wireCall
	if err := json.Unmarshal(raw, &wc); err != nil {
		return nil, err
	}
	mc := &MethodCall{Method: wc.Method}
	switch wc.Method {
	case MethodSetUp:
		if len(wc.Args) != 2 {
			return nil, errors.Join(ErrProtocol, errors.New("setUp requires 2 arguments"))
		}
		args, err := decodeSetUpArgs(wc.Args[0], wc.Args[1])
		if err != nil {
			return nil, err
		}
		mc.SetUp = args
	case MethodTakeTurn:
		if len(wc.Args) != 1 {
			return nil, errors.Join(ErrProtocol, errors.New("takeTurn requires 1 argument"))
		}
		var redacted state.Redacted
		if err := json.Unmarshal(wc.Args[0], &redacted); err != nil {
			return nil, errors.Join(ErrProtocol, err)
		}
		mc.TakeTurn = &TakeTurnArgs{Redacted: &redacted}
	case MethodWin:
		if len(wc.Args) != 1 {
			return nil, errors.Join(ErrProtocol, errors.New("win requires 1 argument"))
		}
		var didWin bool
		if err := json.Unmarshal(wc.Args[0], &didWin); err != nil {
			return nil, errors.Join(ErrProtocol, err)
		}
		mc.Win = &WinArgs{DidWin: didWin}
	case MethodName_:
		if len(wc.Args) != 0 {
			return nil, errors.Join(ErrProtocol, errors.New("name takes no arguments"))
		}
		mc.Name = &NameArgs{}
	case MethodProposeBoard0:
		mc.ProposeBoard0 = &ProposeBoard0Args{Raw: wc.Args}
	default:
		return nil, errors.Join(ErrProtocol, errors.New("unknown method: "+string(wc.Method)))
	}
	return mc, nil
}

// decodeSetUpArgs decodes the [state_or_false, coordinate] pair. Both
// a bare `false` and a JSON `null` are accepted as "no new state",
// since clients differ on which one they send.
func decodeSetUpArgs(stateArg, goalArg json.RawMessage) (*SetUpArgs, error) {
	args := &SetUpArgs{}
	trimmed := string(stateArg)
	if trimmed != "false" && trimmed != "null" {
		var redacted state.Redacted
		if err := json.Unmarshal(stateArg, &redacted); err != nil {
			return nil, errors.Join(ErrProtocol, err)
		}
		args.Redacted = &redacted
	}
	if err := json.Unmarshal(goalArg, &args.Goal); err != nil {
		return nil, errors.Join(ErrProtocol, err)
	}
	return args, nil
}

// EncodeCall encodes an outbound [method_name, [args...]] call.
func EncodeCall(method MethodName, args ...interface{}) interface{} {
	return [2]interface{}{method, args}
}

// EncodeVoid is the acknowledgement response for setUp/win.
const EncodeVoid = "void"

// EncodeChoice encodes a takeTurn result: "PASS" or
// [index, direction, ccw_degrees, coordinate]. Degrees on the wire
// are counter-clockwise.
func EncodeChoice(c strategy.Choice) interface{} {
	if c.Pass {
		return "PASS"
	}
	ccw := (360 - (c.Move.ClockwiseTurns*90)%360) % 360
	return [4]interface{}{c.Move.Index, c.Move.Direction, ccw, c.Move.Destination}
}

// DecodeChoice validates and decodes a takeTurn result value: either
// the string "PASS" or a 4-tuple, anything else being a protocol error.
func DecodeChoice(raw json.RawMessage) (strategy.Choice, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString != "PASS" {
			return strategy.Choice{}, errors.Join(ErrProtocol, errors.New("unexpected string result: "+asString))
		}
		return strategy.Choice{Pass: true}, nil
	}
	var tuple [4]json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return strategy.Choice{}, errors.Join(ErrProtocol, err)
	}
	var index int
	var direction geom.Direction
	var ccwDegrees int
	var destination geom.Position
	if err := json.Unmarshal(tuple[0], &index); err != nil {
		return strategy.Choice{}, errors.Join(ErrProtocol, err)
	}
	if err := json.Unmarshal(tuple[1], &direction); err != nil {
		return strategy.Choice{}, errors.Join(ErrProtocol, err)
	}
	if err := json.Unmarshal(tuple[2], &ccwDegrees); err != nil {
		return strategy.Choice{}, errors.Join(ErrProtocol, err)
	}
	switch ccwDegrees {
	case 0, 90, 180, 270:
	default:
		return strategy.Choice{}, errors.Join(ErrProtocol, errors.New("rotation must be one of 0, 90, 180, 270"))
	}
	if err := json.Unmarshal(tuple[3], &destination); err != nil {
		return strategy.Choice{}, errors.Join(ErrProtocol, err)
	}
	cw := ((-ccwDegrees) % 360 + 360) % 360
	return strategy.Choice{
		Move: strategy.Move{
			Index:          index,
			Direction:      direction,
			ClockwiseTurns: cw / 90,
			Destination:    destination,
		},
	}, nil
}
