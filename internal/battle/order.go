package battle

import (
	"fmt"
	"strings"
)

// OrderKind tags which variant an Order holds.
type OrderKind uint8

const (
	OrderHold   OrderKind = iota // Stay in place, keep facing
	OrderMove                    // Walk to TargetX, TargetY over the turn
	OrderRotate                  // Turn to face Direction
)

func (k OrderKind) String() string {
	switch k {
	case OrderHold:
		return "hold"
	case OrderMove:
		return "move"
	case OrderRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// ParseOrderKind parses "hold", "move" or "rotate" (case-insensitive).
func ParseOrderKind(s string) (OrderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold":
		return OrderHold, nil
	case "move":
		return OrderMove, nil
	case "rotate":
		return OrderRotate, nil
	}
	return OrderHold, fmt.Errorf("battle: unknown order type %q", s)
}

// Order is a commanded action held by a regiment.
// Only the fields belonging to Kind are meaningful.
type Order struct {
	Kind OrderKind

	// Move destination (grid cell)
	TargetX int
	TargetY int

	// Rotate heading
	Direction Direction
}

// Hold returns a hold order.
func Hold() Order {
	return Order{Kind: OrderHold}
}

// Move returns a move order toward the given cell.
func Move(x, y int) Order {
	return Order{Kind: OrderMove, TargetX: x, TargetY: y}
}

// Rotate returns a rotate order toward the given heading.
func Rotate(d Direction) Order {
	return Order{Kind: OrderRotate, Direction: d}
}

// Describe returns a short human-readable description of the order.
func (o Order) Describe() string {
	switch o.Kind {
	case OrderHold:
		return "Hold"
	case OrderMove:
		return fmt.Sprintf("Move -> (%d,%d)", o.TargetX, o.TargetY)
	case OrderRotate:
		return fmt.Sprintf("Rotate -> %s", o.Direction)
	default:
		return "???"
	}
}

// String implements fmt.Stringer.
func (o Order) String() string {
	return o.Describe()
}
