package remote

import (
	"context"
	"errors"

	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/state"
	"github.com/eholt/labyrinth/strategy"
)

// RemotePlayer implements player.Player by speaking the wire protocol
// over a Stream. The referee only ever talks to remote players
// through a SafePlayer wrapping one of these, never directly, so a
// slow or malicious socket cannot block the game loop.
type RemotePlayer struct {
	stream *Stream
}

// NewRemotePlayer wraps a connected Stream as a Player.
func NewRemotePlayer(stream *Stream) *RemotePlayer {
	return &RemotePlayer{stream: stream}
}

// Name implements player.Player.
func (r *RemotePlayer) Name(ctx context.Context) (string, error) {
	if err := r.stream.WriteValue(EncodeCall(MethodName_)); err != nil {
		return "", err
	}
	var name string
	if err := r.stream.ReadValue(&name); err != nil {
		return "", err
	}
	return name, nil
}

// SetUp implements player.Player.
func (r *RemotePlayer) SetUp(ctx context.Context, redacted *state.Redacted, goal geom.Position) error {
	var stateArg interface{} = false
	if redacted != nil {
		stateArg = redacted
	}
	if err := r.stream.WriteValue(EncodeCall(MethodSetUp, stateArg, goal)); err != nil {
		return err
	}
	return r.readVoidAck()
}

// TakeTurn implements player.Player.
func (r *RemotePlayer) TakeTurn(ctx context.Context, redacted *state.Redacted) (strategy.Choice, error) {
	if err := r.stream.WriteValue(EncodeCall(MethodTakeTurn, redacted)); err != nil {
		return strategy.Choice{}, err
	}
	raw, err := r.stream.ReadRaw()
	if err != nil {
		return strategy.Choice{}, err
	}
	return DecodeChoice(raw)
}

// Win implements player.Player.
func (r *RemotePlayer) Win(ctx context.Context, didWin bool) error {
	if err := r.stream.WriteValue(EncodeCall(MethodWin, didWin)); err != nil {
		return err
	}
	return r.readVoidAck()
}

func (r *RemotePlayer) readVoidAck() error {
	var ack string
	if err := r.stream.ReadValue(&ack); err != nil {
		return err
	}
	if ack != EncodeVoid {
		return errors.Join(ErrProtocol, errors.New("expected void acknowledgement, got "+ack))
	}
	return nil
}

// Close releases the underlying stream's connection.
func (r *RemotePlayer) Close() error {
	return r.stream.Close()
}
