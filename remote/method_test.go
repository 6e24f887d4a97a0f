package remote

import (
	"encoding/json"
	"testing"

	"github.com/eholt/labyrinth/geom"
	"github.com/eholt/labyrinth/strategy"
)

func TestParseMethodCallName(t *testing.T) {
	mc, err := ParseMethodCall(json.RawMessage(`["name",[]]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Method != MethodName_ || mc.Name == nil {
		t.Errorf("ParseMethodCall(name) = %+v, want a populated Name call", mc)
	}
}

func TestParseMethodCallWin(t *testing.T) {
	mc, err := ParseMethodCall(json.RawMessage(`["win",[true]]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Win == nil || !mc.Win.DidWin {
		t.Errorf("ParseMethodCall(win) = %+v, want DidWin=true", mc)
	}
}

func TestParseMethodCallSetUpAcceptsFalseState(t *testing.T) {
	mc, err := ParseMethodCall(json.RawMessage(`["setUp",[false,{"row#":1,"column#":2}]]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.SetUp == nil || mc.SetUp.Redacted != nil {
		t.Errorf("ParseMethodCall(setUp, false) = %+v, want nil Redacted", mc.SetUp)
	}
	if mc.SetUp.Goal != (geom.Position{Row: 1, Col: 2}) {
		t.Errorf("ParseMethodCall(setUp) goal = %v, want (1,2)", mc.SetUp.Goal)
	}
}

func TestParseMethodCallUnknownMethod(t *testing.T) {
	if _, err := ParseMethodCall(json.RawMessage(`["bogus",[]]`)); err == nil {
		t.Error("ParseMethodCall did not reject an unknown method name")
	}
}

func TestEncodeDecodeChoiceRoundTrip(t *testing.T) {
	// A Move round-trips through JSON as the identity.
	choice := strategy.Choice{
		Move: strategy.Move{
			Index:          2,
			Direction:      geom.Right,
			ClockwiseTurns: 1,
			Destination:    geom.Position{Row: 3, Col: 4},
		},
	}
	data, err := json.Marshal(EncodeChoice(choice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeChoice(json.RawMessage(data))
	if err != nil {
		t.Fatalf("DecodeChoice returned error: %v", err)
	}
	if got != choice {
		t.Errorf("round-tripped choice = %+v, want %+v", got, choice)
	}
}

func TestDecodeChoiceRejectsBadRotation(t *testing.T) {
	for _, degrees := range []string{"45", "360", "-90"} {
		raw := json.RawMessage(`[0,"LEFT",` + degrees + `,{"row#":1,"column#":1}]`)
		if _, err := DecodeChoice(raw); err == nil {
			t.Errorf("DecodeChoice accepted rotation %s degrees", degrees)
		}
	}
}

func TestEncodeDecodePassRoundTrip(t *testing.T) {
	data, err := json.Marshal(EncodeChoice(strategy.Choice{Pass: true}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeChoice(json.RawMessage(data))
	if err != nil {
		t.Fatalf("DecodeChoice returned error: %v", err)
	}
	if !got.Pass {
		t.Errorf("round-tripped choice = %+v, want Pass=true", got)
	}
}
