// Package scenario loads battle setups (terrain, regiments and scripted
// turns) from YAML files and turns them into ready-to-play battles.
// This package depends on battle and terrain but neither depends on scenario.
package scenario

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/scenario/formats"
	"github.com/vovakirdan/tui-wego/internal/terrain"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("scenario: invalid")

// Scenario represents a complete scenario definition.
type Scenario struct {
	ID           string
	Name         string
	Description  string
	TicksPerTurn int
	Width        int
	Height       int
	Heights      []string
	Seed         *int64
	Regiments    []formats.Regiment
	Script       Script
	FilePath     string
}

// Script holds the scripted orders for each turn, turn 1 first.
type Script [][]formats.Step

// OrdersFor returns the orders scripted for a 0-based turn number.
// Turns past the end of the script have no orders.
func (s Script) OrdersFor(turn int) []formats.Step {
	if turn < 0 || turn >= len(s) {
		return nil
	}
	return s[turn]
}

// fromParsed converts a parsed file into a Scenario.
func fromParsed(p formats.Scenario, path string) *Scenario {
	return &Scenario{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		TicksPerTurn: p.TicksPerTurn,
		Width:        p.Width,
		Height:       p.Height,
		Heights:      p.Heights,
		Seed:         p.Seed,
		Regiments:    p.Regiments,
		Script:       Script(p.Turns),
		FilePath:     path,
	}
}

// Parse parses and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	p, err := formats.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	sc := fromParsed(p, "")
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks ids, placements and scripted order targets.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s: map size %dx%d", ErrInvalid, s.ID, s.Width, s.Height)
	}
	if s.TicksPerTurn < 0 {
		return fmt.Errorf("%w: %s: ticks_per_turn %d", ErrInvalid, s.ID, s.TicksPerTurn)
	}

	inside := func(x, y int) bool {
		return x >= 0 && x < s.Width && y >= 0 && y < s.Height
	}

	ids := make(map[string]bool, len(s.Regiments))
	for _, r := range s.Regiments {
		if r.ID == "" {
			return fmt.Errorf("%w: %s: regiment without id", ErrInvalid, s.ID)
		}
		if ids[r.ID] {
			return fmt.Errorf("%w: %s: duplicate regiment %q", ErrInvalid, s.ID, r.ID)
		}
		ids[r.ID] = true
		if !inside(r.X, r.Y) {
			return fmt.Errorf("%w: %s: regiment %q placed off the map at (%d,%d)", ErrInvalid, s.ID, r.ID, r.X, r.Y)
		}
		if r.Order != nil && r.Order.Kind == battle.OrderMove && !inside(r.Order.TargetX, r.Order.TargetY) {
			return fmt.Errorf("%w: %s: regiment %q ordered off the map", ErrInvalid, s.ID, r.ID)
		}
	}

	for i, turn := range s.Script {
		for _, st := range turn {
			if !ids[st.Regiment] {
				return fmt.Errorf("%w: %s: turn %d orders unknown regiment %q", ErrInvalid, s.ID, i+1, st.Regiment)
			}
			if st.Order.Kind == battle.OrderMove && !inside(st.Order.TargetX, st.Order.TargetY) {
				return fmt.Errorf("%w: %s: turn %d moves %q off the map", ErrInvalid, s.ID, i+1, st.Regiment)
			}
		}
	}
	return nil
}

// Terrain builds the height map: explicit rows win over a seed,
// and a scenario with neither gets a flat map.
func (s *Scenario) Terrain() (*terrain.Grid, error) {
	switch {
	case len(s.Heights) > 0:
		g, err := terrain.FromRows(s.Width, s.Height, s.Heights)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		return g, nil
	case s.Seed != nil:
		return terrain.Generate(s.Width, s.Height, *s.Seed), nil
	default:
		return terrain.NewGrid(s.Width, s.Height), nil
	}
}

// NewBattle creates a fresh battle in PLANNING at turn 0.
// ticksOverride replaces the scenario's ticks per turn when positive.
// Every call returns independent state.
func (s *Scenario) NewBattle(battleID string, ticksOverride int) (*battle.Battle, error) {
	grid, err := s.Terrain()
	if err != nil {
		return nil, err
	}

	regs := make([]*battle.Regiment, 0, len(s.Regiments))
	for _, r := range s.Regiments {
		reg := battle.NewRegiment(r.ID, float64(r.X), float64(r.Y), r.Facing)
		if r.Order != nil {
			reg.SetOrder(*r.Order)
		}
		regs = append(regs, reg)
	}

	ticks := s.TicksPerTurn
	if ticksOverride > 0 {
		ticks = ticksOverride
	}

	return battle.NewBattle(battle.Options{
		ID:           battleID,
		ScenarioID:   s.ID,
		Terrain:      grid,
		TicksPerTurn: ticks,
	}, regs), nil
}
