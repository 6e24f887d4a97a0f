package remote

import (
	"context"
	"net"
	"testing"

	"github.com/eholt/labyrinth/strategy"
)

func TestRemotePlayerName(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		serverStream := NewStream(server)
		raw, err := serverStream.ReadRaw()
		if err != nil {
			return
		}
		call, err := ParseMethodCall(raw)
		if err != nil || call.Method != MethodName_ {
			return
		}
		serverStream.WriteValue("alice")
	}()

	rp := NewRemotePlayer(NewStream(client))
	name, err := rp.Name(context.Background())
	if err != nil {
		t.Fatalf("Name() returned error: %v", err)
	}
	if name != "alice" {
		t.Errorf("Name() = %q, want %q", name, "alice")
	}
}

func TestRemotePlayerTakeTurnPass(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		serverStream := NewStream(server)
		raw, err := serverStream.ReadRaw()
		if err != nil {
			return
		}
		call, err := ParseMethodCall(raw)
		if err != nil || call.Method != MethodTakeTurn {
			return
		}
		serverStream.WriteValue(EncodeChoice(strategy.Choice{Pass: true}))
	}()

	rp := NewRemotePlayer(NewStream(client))
	choice, err := rp.TakeTurn(context.Background(), nil)
	if err != nil {
		t.Fatalf("TakeTurn() returned error: %v", err)
	}
	if !choice.Pass {
		t.Errorf("TakeTurn() = %+v, want Pass=true", choice)
	}
}
