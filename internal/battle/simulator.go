package battle

// DefaultTicksPerTurn is the length of a turn in simulation ticks.
const DefaultTicksPerTurn = 100

// Simulator runs the fixed-length tick loop of one turn over a set of regiments.
//
// The tick counter always stays within [0, TicksPerTurn]; the turn is
// complete exactly when it reaches TicksPerTurn.
type Simulator struct {
	ticksPerTurn int
	tick         int
	regiments    []*Regiment
}

// NewSimulator creates a simulator with the tick counter at 0.
// A ticksPerTurn of 0 or less selects DefaultTicksPerTurn.
func NewSimulator(regiments []*Regiment, ticksPerTurn int) *Simulator {
	if ticksPerTurn <= 0 {
		ticksPerTurn = DefaultTicksPerTurn
	}
	return &Simulator{
		ticksPerTurn: ticksPerTurn,
		regiments:    regiments,
	}
}

// TicksPerTurn returns the tick budget of one turn.
func (s *Simulator) TicksPerTurn() int {
	return s.ticksPerTurn
}

// Tick returns the number of ticks executed in the current turn.
func (s *Simulator) Tick() int {
	return s.tick
}

// Regiments returns the regiments in their advance order.
func (s *Simulator) Regiments() []*Regiment {
	return s.regiments
}

// SetRegiments replaces the regiment collection. Call only between turns.
func (s *Simulator) SetRegiments(regiments []*Regiment) {
	s.regiments = regiments
}

// Regiment looks up a regiment by ID.
func (s *Simulator) Regiment(id string) (*Regiment, bool) {
	for _, r := range s.regiments {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Reset rewinds the tick counter to 0 for a new turn.
func (s *Simulator) Reset() {
	s.tick = 0
}

// IsComplete reports whether the turn's tick budget is used up.
func (s *Simulator) IsComplete() bool {
	return s.tick >= s.ticksPerTurn
}

// AdvanceOneTick advances every regiment by one tick, in storage order,
// and returns whether the turn is still in progress afterwards.
// Calling it on a complete turn does nothing and returns false.
func (s *Simulator) AdvanceOneTick() bool {
	if s.IsComplete() {
		return false
	}

	for _, r := range s.regiments {
		r.AdvanceTick(s.ticksPerTurn)
	}
	s.tick++

	return s.tick < s.ticksPerTurn
}

// RunFullTurn resets the counter and ticks until the turn completes.
// Returns the number of ticks executed, which always equals TicksPerTurn.
func (s *Simulator) RunFullTurn() int {
	s.Reset()

	executed := 0
	for {
		executed++
		if !s.AdvanceOneTick() {
			break
		}
	}
	return executed
}
