package battle

import "testing"

func TestDirectionFromDeltaCanonical(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected Direction
	}{
		{"east", 1, 0, East},
		{"south", 0, 1, South},
		{"west", -1, 0, West},
		{"north", 0, -1, North},
		{"southeast", 1, 1, SouthEast},
		{"southwest", -1, 1, SouthWest},
		{"northwest", -1, -1, NorthWest},
		{"northeast", 1, -1, NorthEast},
		{"zero vector defaults to north", 0, 0, North},
		{"long shallow vector stays east", 10, 3, East},
		{"steep vector is south", 1, 8, South},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := DirectionFromDelta(tc.dx, tc.dy)
			if result != tc.expected {
				t.Errorf("DirectionFromDelta(%v, %v) = %v, expected %v", tc.dx, tc.dy, result, tc.expected)
			}
		})
	}
}

func TestDirectionFromDeltaSectorBoundaries(t *testing.T) {
	// tan(22.5deg) ~= 0.41421356; just below stays East, just above tips to SouthEast.
	if d := DirectionFromDelta(1, 0.41); d != East {
		t.Errorf("angle just under 22.5 = %v, expected E", d)
	}
	if d := DirectionFromDelta(1, 0.42); d != SouthEast {
		t.Errorf("angle just over 22.5 = %v, expected SE", d)
	}
	// Just under 360 wraps back into East.
	if d := DirectionFromDelta(1, -0.41); d != East {
		t.Errorf("angle just over 337.5 = %v, expected E", d)
	}
	if d := DirectionFromDelta(1, -0.42); d != NorthEast {
		t.Errorf("angle just under 337.5 = %v, expected NE", d)
	}
}

func TestDirectionDeltaRoundTrip(t *testing.T) {
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		if got := DirectionFromDelta(float64(dx), float64(dy)); got != d {
			t.Errorf("DirectionFromDelta(%s.Delta()) = %v", d, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in       string
		expected Direction
	}{
		{"n", North},
		{"NE", NorthEast},
		{"east", East},
		{"South-East", SouthEast},
		{"south_west", SouthWest},
		{" W ", West},
		{"northwest", NorthWest},
	}
	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseDirection(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}

	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(\"up\") should fail")
	}
}

func TestParseOrderKind(t *testing.T) {
	for in, expected := range map[string]OrderKind{"hold": OrderHold, "MOVE": OrderMove, "Rotate": OrderRotate} {
		got, err := ParseOrderKind(in)
		if err != nil || got != expected {
			t.Errorf("ParseOrderKind(%q) = %v, %v; expected %v", in, got, err, expected)
		}
	}
	if _, err := ParseOrderKind("charge"); err == nil {
		t.Error("ParseOrderKind(\"charge\") should fail")
	}
}

func TestOrderDescribe(t *testing.T) {
	tests := []struct {
		order    Order
		expected string
	}{
		{Hold(), "Hold"},
		{Move(3, 4), "Move -> (3,4)"},
		{Rotate(SouthWest), "Rotate -> SW"},
	}
	for _, tc := range tests {
		if got := tc.order.Describe(); got != tc.expected {
			t.Errorf("Describe() = %q, expected %q", got, tc.expected)
		}
	}
}
