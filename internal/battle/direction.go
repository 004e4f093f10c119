// Package battle provides the deterministic WEGO turn-simulation core:
// the order model, regiments, the fixed-length turn simulator and the
// PLANNING/SIMULATION phase controller.
//
// The package has no external dependencies and never blocks, sleeps or
// performs I/O. Rendering, input and persistence live in other packages
// and only consume the state exposed here.
package battle

import (
	"fmt"
	"math"
	"strings"
)

// Direction is one of the eight compass headings.
// Grid Y grows southward (screen coordinates), so North is (0, -1).
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// DefaultFacing is the facing a regiment gets when none is specified.
const DefaultFacing = North

// AllDirections returns the eight headings in clockwise order starting at North.
func AllDirections() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// String returns the compass abbreviation of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "?"
	}
}

// Delta returns the (dx, dy) grid step for this heading.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the eight defined headings.
func (d Direction) Valid() bool {
	return d <= NorthWest
}

// ParseDirection accepts abbreviations ("ne") and full names ("northeast",
// "north-east", "north_east"), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	switch key {
	case "n", "north":
		return North, nil
	case "ne", "northeast":
		return NorthEast, nil
	case "e", "east":
		return East, nil
	case "se", "southeast":
		return SouthEast, nil
	case "s", "south":
		return South, nil
	case "sw", "southwest":
		return SouthWest, nil
	case "w", "west":
		return West, nil
	case "nw", "northwest":
		return NorthWest, nil
	}
	return North, fmt.Errorf("battle: unknown direction %q", s)
}

// DirectionFromDelta classifies a movement vector into one of eight sectors.
//
// The angle atan2(dy, dx) is measured in degrees, normalized to [0, 360),
// with East at 0 and sectors 45 degrees wide centered on each heading.
// Lower sector bounds are inclusive. A zero vector yields North.
func DirectionFromDelta(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return North
	}

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 337.5 || angle < 22.5:
		return East
	case angle < 67.5:
		return SouthEast
	case angle < 112.5:
		return South
	case angle < 157.5:
		return SouthWest
	case angle < 202.5:
		return West
	case angle < 247.5:
		return NorthWest
	case angle < 292.5:
		return North
	default:
		return NorthEast
	}
}
