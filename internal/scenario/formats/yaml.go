// Package formats provides pluggable scenario file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"gopkg.in/yaml.v3"
)

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description,omitempty"`
	TicksPerTurn int              `yaml:"ticks_per_turn,omitempty"`
	Map          YAMLMap          `yaml:"map"`
	Regiments    []YAMLRegiment   `yaml:"regiments"`
	Turns        [][]YAMLTurnStep `yaml:"turns,omitempty"`
}

// YAMLMap describes the terrain: either explicit digit rows or a noise seed.
type YAMLMap struct {
	W       int      `yaml:"w"`
	H       int      `yaml:"h"`
	Heights []string `yaml:"heights,omitempty"`
	Seed    *int64   `yaml:"seed,omitempty"`
}

// YAMLRegiment is a regiment's starting state.
type YAMLRegiment struct {
	ID     string     `yaml:"id"`
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	Facing string     `yaml:"facing,omitempty"`
	Order  *YAMLOrder `yaml:"order,omitempty"`
}

// YAMLOrder is an order in YAML form.
//
//	{kind: move, x: 4, y: 7}
//	{kind: rotate, facing: SW}
//	{kind: hold}
type YAMLOrder struct {
	Kind   string `yaml:"kind"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	Facing string `yaml:"facing,omitempty"`
}

// YAMLTurnStep is one scripted order inside a turn.
type YAMLTurnStep struct {
	Regiment  string `yaml:"regiment"`
	YAMLOrder `yaml:",inline"`
}

// Scenario represents a parsed scenario ready for use.
type Scenario struct {
	ID           string
	Name         string
	Description  string
	TicksPerTurn int
	Width        int
	Height       int
	Heights      []string
	Seed         *int64
	Regiments    []Regiment
	Turns        [][]Step
}

// Regiment is a parsed regiment entry.
type Regiment struct {
	ID     string
	X      int
	Y      int
	Facing battle.Direction
	Order  *battle.Order
}

// Step is a parsed scripted order.
type Step struct {
	Regiment string
	Order    battle.Order
}

// ParseYAML parses a YAML scenario file.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	sc := Scenario{
		ID:           ys.ID,
		Name:         ys.Name,
		Description:  ys.Description,
		TicksPerTurn: ys.TicksPerTurn,
		Width:        ys.Map.W,
		Height:       ys.Map.H,
		Heights:      ys.Map.Heights,
		Seed:         ys.Map.Seed,
	}
	if sc.Name == "" {
		sc.Name = sc.ID
	}

	for _, yr := range ys.Regiments {
		facing := battle.DefaultFacing
		if yr.Facing != "" {
			d, err := battle.ParseDirection(yr.Facing)
			if err != nil {
				return Scenario{}, fmt.Errorf("regiment %q: %w", yr.ID, err)
			}
			facing = d
		}

		reg := Regiment{ID: yr.ID, X: yr.X, Y: yr.Y, Facing: facing}
		if yr.Order != nil {
			o, err := yr.Order.ToOrder()
			if err != nil {
				return Scenario{}, fmt.Errorf("regiment %q: %w", yr.ID, err)
			}
			reg.Order = &o
		}
		sc.Regiments = append(sc.Regiments, reg)
	}

	for i, turn := range ys.Turns {
		steps := make([]Step, 0, len(turn))
		for _, ts := range turn {
			o, err := ts.ToOrder()
			if err != nil {
				return Scenario{}, fmt.Errorf("turn %d, regiment %q: %w", i+1, ts.Regiment, err)
			}
			steps = append(steps, Step{Regiment: ts.Regiment, Order: o})
		}
		sc.Turns = append(sc.Turns, steps)
	}

	return sc, nil
}

// ToOrder converts the YAML form into a battle order.
func (yo YAMLOrder) ToOrder() (battle.Order, error) {
	kind, err := battle.ParseOrderKind(yo.Kind)
	if err != nil {
		return battle.Order{}, err
	}

	switch kind {
	case battle.OrderMove:
		return battle.Move(yo.X, yo.Y), nil
	case battle.OrderRotate:
		d, err := battle.ParseDirection(yo.Facing)
		if err != nil {
			return battle.Order{}, err
		}
		return battle.Rotate(d), nil
	default:
		return battle.Hold(), nil
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
