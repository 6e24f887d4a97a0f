package geom

import "testing"

func TestShapeRotate(t *testing.T) {
	line, err := NewShapeFromConnector('│')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rotated := line.Rotate(1)
	want, err := NewShapeFromConnector('─')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated != want {
		t.Errorf("rotating │ by 90 degrees = %+v, want %+v", rotated, want)
	}
	backAgain := rotated.Rotate(3)
	if backAgain != line {
		t.Errorf("rotating ─ by 270 degrees = %+v, want original %+v", backAgain, line)
	}
}

func TestShapeRotateFullCircleIsIdentity(t *testing.T) {
	for r := range connectorTable {
		s, err := NewShapeFromConnector(r)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", r, err)
		}
		for _, k := range []int{4, 8, -4} {
			if got := s.Rotate(k); got != s {
				t.Errorf("rotating %q by %d quarter turns = %+v, want %+v", r, k, got, s)
			}
		}
	}
}

func TestShapeConnectorRoundTrip(t *testing.T) {
	for r := range connectorTable {
		s, err := NewShapeFromConnector(r)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", r, err)
		}
		got, err := s.Connector()
		if err != nil {
			t.Fatalf("unexpected error getting connector back: %v", err)
		}
		if got != r {
			t.Errorf("Connector() for %+v = %q, want %q", s, got, r)
		}
	}
}

func TestShapeCrossRotationInvariant(t *testing.T) {
	cross, err := NewShapeFromConnector('┼')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k := 0; k < 4; k++ {
		if got := cross.Rotate(k); got != cross {
			t.Errorf("cross rotated by %d quarter turns = %+v, want unchanged %+v", k, got, cross)
		}
	}
}

func TestShapeHas(t *testing.T) {
	corner, err := NewShapeFromConnector('└')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		d    Direction
		want bool
	}{
		{Up, true},
		{Right, true},
		{Down, false},
		{Left, false},
	}
	for _, c := range cases {
		if got := corner.Has(c.d); got != c.want {
			t.Errorf("└.Has(%v) = %v, want %v", c.d, got, c.want)
		}
	}
}
