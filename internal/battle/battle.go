package battle

import (
	"errors"
	"fmt"
	"math"
)

// ErrTargetOutOfBounds is returned by Battle.Command for Move targets off the map.
var ErrTargetOutOfBounds = errors.New("battle: move target outside the map")

// Terrain is the map query collaborator.
// TileHeight fails for coordinates where IsValidPosition is false.
type Terrain interface {
	IsValidPosition(x, y int) bool
	TileHeight(x, y int) (float64, error)
}

// Battle is the explicitly constructed top-level game state: terrain,
// regiments, simulator and phase controller. There is no package-level
// instance; whoever needs the state receives a *Battle.
type Battle struct {
	id         string
	scenarioID string
	terrain    Terrain
	ctrl       *Controller
}

// Options configures NewBattle.
type Options struct {
	ID           string
	ScenarioID   string
	Terrain      Terrain // May be nil: no bounds checking, zero heights
	TicksPerTurn int     // 0 selects DefaultTicksPerTurn
}

// NewBattle creates a battle in PLANNING at turn 0.
func NewBattle(opts Options, regiments []*Regiment) *Battle {
	sim := NewSimulator(regiments, opts.TicksPerTurn)
	return &Battle{
		id:         opts.ID,
		scenarioID: opts.ScenarioID,
		terrain:    opts.Terrain,
		ctrl:       NewController(sim),
	}
}

// ID returns the battle identifier.
func (b *Battle) ID() string { return b.id }

// ScenarioID returns the scenario the battle was built from.
func (b *Battle) ScenarioID() string { return b.scenarioID }

// Terrain returns the map collaborator, possibly nil.
func (b *Battle) Terrain() Terrain { return b.terrain }

// Controller returns the phase controller.
func (b *Battle) Controller() *Controller { return b.ctrl }

// Regiments returns the regiments in advance order.
func (b *Battle) Regiments() []*Regiment { return b.ctrl.sim.Regiments() }

// Regiment looks up a regiment by ID.
func (b *Battle) Regiment(id string) (*Regiment, bool) { return b.ctrl.sim.Regiment(id) }

// RegimentAt returns the regiment whose rounded position is (x, y).
func (b *Battle) RegimentAt(x, y int) (*Regiment, bool) {
	for _, r := range b.Regiments() {
		rx, ry := r.Position()
		if int(math.Round(rx)) == x && int(math.Round(ry)) == y {
			return r, true
		}
	}
	return nil, false
}

// Command issues an order on behalf of a player. Unlike Controller.IssueOrder
// it rejects Move targets outside the terrain.
func (b *Battle) Command(id string, o Order) error {
	if o.Kind == OrderMove && b.terrain != nil && !b.terrain.IsValidPosition(o.TargetX, o.TargetY) {
		return fmt.Errorf("%w: (%d,%d)", ErrTargetOutOfBounds, o.TargetX, o.TargetY)
	}
	return b.ctrl.IssueOrder(id, o)
}

// HeightAt is an advisory height lookup for renderers. Coordinates outside
// the map, or a missing terrain, yield def instead of an error.
func (b *Battle) HeightAt(x, y int, def float64) float64 {
	if b.terrain == nil || !b.terrain.IsValidPosition(x, y) {
		return def
	}
	h, err := b.terrain.TileHeight(x, y)
	if err != nil {
		return def
	}
	return h
}

// RunTurn plays one whole turn: StartTurn, tick until complete, EndTurn.
// Returns the number of ticks executed, or 0 when not in PLANNING.
func (b *Battle) RunTurn() int {
	if b.ctrl.Phase() != PhasePlanning {
		return 0
	}
	b.ctrl.StartTurn()

	ticks := 0
	for {
		ticks++
		if !b.ctrl.AdvanceTick() {
			break
		}
	}
	b.ctrl.EndTurn()
	return ticks
}

// Snapshot captures the complete observable battle state.
type Snapshot struct {
	BattleID  string             `json:"battle_id"`
	Turn      int                `json:"turn"`
	Tick      int                `json:"tick"`
	Phase     string             `json:"phase"`
	Selected  string             `json:"selected,omitempty"`
	Regiments []RegimentSnapshot `json:"regiments"`
}

// Snapshot returns the current battle snapshot for persistence and
// determinism checks.
func (b *Battle) Snapshot() Snapshot {
	regs := b.Regiments()
	s := Snapshot{
		BattleID:  b.id,
		Turn:      b.ctrl.Turn(),
		Tick:      b.ctrl.Tick(),
		Phase:     b.ctrl.Phase().String(),
		Selected:  b.ctrl.SelectedRegimentID(),
		Regiments: make([]RegimentSnapshot, 0, len(regs)),
	}
	for _, r := range regs {
		s.Regiments = append(s.Regiments, r.Snapshot())
	}
	return s
}
