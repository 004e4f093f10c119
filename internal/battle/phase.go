package battle

import (
	"errors"
	"fmt"
)

// Phase is the top-level game phase.
type Phase uint8

const (
	PhasePlanning   Phase = iota // Orders may be issued
	PhaseSimulation              // Orders execute; commands are rejected
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "PLANNING"
	case PhaseSimulation:
		return "SIMULATION"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrNotPlanning is returned by commands issued outside the PLANNING phase.
	ErrNotPlanning = errors.New("battle: commands are only accepted during planning")

	// ErrUnknownRegiment is returned when a command names a regiment that does not exist.
	ErrUnknownRegiment = errors.New("battle: unknown regiment")
)

// Controller is the PLANNING/SIMULATION state machine. It gates when orders
// may be set and when ticks may run, and drives the turn Simulator.
//
// Every method is callable in every phase: illegal transitions are silent
// no-ops and gated commands return ErrNotPlanning. Single-threaded use only.
type Controller struct {
	sim      *Simulator
	phase    Phase
	tick     int
	turn     int
	selected string

	observers []subscription
	nextSubID int
}

// NewController creates a controller in PLANNING around the given simulator.
func NewController(sim *Simulator) *Controller {
	return &Controller{
		sim:   sim,
		phase: PhasePlanning,
	}
}

// Simulator returns the turn simulator driven by this controller.
func (c *Controller) Simulator() *Simulator {
	return c.sim
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Tick returns the tick counter of the current turn.
// It equals the simulator's counter in both phases: StartTurn and EndTurn
// rewind the two together.
func (c *Controller) Tick() int {
	return c.tick
}

// Turn returns the number of completed turns.
func (c *Controller) Turn() int {
	return c.turn
}

// SelectedRegimentID returns the selected regiment, or "" if none.
func (c *Controller) SelectedRegimentID() string {
	return c.selected
}

// Subscribe registers an observer. The returned function unregisters it;
// calling it more than once is harmless.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	id := c.nextSubID
	c.nextSubID++
	c.observers = append(c.observers, subscription{id: id, fn: fn})

	return func() {
		for i, s := range c.observers {
			if s.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) emit(ev Event) {
	// Copy so observers may unsubscribe while being notified.
	subs := make([]subscription, len(c.observers))
	copy(subs, c.observers)
	for _, s := range subs {
		s.fn(ev)
	}
}

// StartTurn moves PLANNING to SIMULATION and rewinds both the controller's
// and the simulator's tick counters, so every simulation phase starts at tick 0.
// No-op outside PLANNING.
func (c *Controller) StartTurn() {
	if c.phase != PhasePlanning {
		return
	}
	c.sim.Reset()
	c.tick = 0
	c.phase = PhaseSimulation
	c.emit(PhaseChangedEvent{From: PhasePlanning, To: PhaseSimulation, Turn: c.turn})
}

// EndTurn moves SIMULATION back to PLANNING once the turn has used its whole
// tick budget. It is a no-op outside SIMULATION and while the turn is still
// in progress: a started turn cannot be aborted.
func (c *Controller) EndTurn() {
	if c.phase != PhaseSimulation || !c.sim.IsComplete() {
		return
	}
	c.sim.Reset()
	c.tick = 0
	c.turn++
	c.phase = PhasePlanning
	c.emit(PhaseChangedEvent{From: PhaseSimulation, To: PhasePlanning, Turn: c.turn})
}

// AdvanceTick runs one simulation tick. It returns whether the turn is
// still in progress; false means the driver should stop ticking and call
// EndTurn. Outside SIMULATION it does nothing and returns false.
func (c *Controller) AdvanceTick() bool {
	if c.phase != PhaseSimulation {
		return false
	}
	inProgress := c.sim.AdvanceOneTick()
	c.tick = c.sim.Tick()
	return inProgress
}

// IsTurnComplete reports whether the running turn has used its tick budget.
func (c *Controller) IsTurnComplete() bool {
	return c.phase == PhaseSimulation && c.sim.IsComplete()
}

// SetSelectedRegimentID changes the selection. It is a no-op during
// SIMULATION and when id equals the current selection.
func (c *Controller) SetSelectedRegimentID(id string) {
	if c.phase != PhasePlanning || id == c.selected {
		return
	}
	prev := c.selected
	c.selected = id
	c.emit(SelectionChangedEvent{From: prev, To: id})
}

func (c *Controller) planningRegiment(id string) (*Regiment, error) {
	if c.phase != PhasePlanning {
		return nil, ErrNotPlanning
	}
	r, ok := c.sim.Regiment(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegiment, id)
	}
	return r, nil
}

// IssueOrder assigns an order to a regiment during PLANNING.
// Move targets are not bounds-checked here.
func (c *Controller) IssueOrder(id string, o Order) error {
	r, err := c.planningRegiment(id)
	if err != nil {
		return err
	}
	r.SetOrder(o)
	return nil
}

// CancelOrder clears a regiment's order during PLANNING.
func (c *Controller) CancelOrder(id string) error {
	r, err := c.planningRegiment(id)
	if err != nil {
		return err
	}
	r.ClearOrder()
	return nil
}

// SetFacing forces a regiment's heading during PLANNING.
func (c *Controller) SetFacing(id string, d Direction) error {
	r, err := c.planningRegiment(id)
	if err != nil {
		return err
	}
	r.SetFacing(d)
	return nil
}

// PlaceRegiment moves a regiment directly to a cell during PLANNING.
func (c *Controller) PlaceRegiment(id string, x, y int) error {
	r, err := c.planningRegiment(id)
	if err != nil {
		return err
	}
	r.SetPosition(float64(x), float64(y))
	return nil
}
