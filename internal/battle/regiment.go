package battle

import "math"

// moveState is the bookkeeping of an in-progress Move order.
// It exists only while a Move is executing.
type moveState struct {
	startX  float64
	startY  float64
	elapsed int
}

// Regiment is one battlefield unit. It owns its position, facing and
// current order and advances itself one tick at a time.
//
// Position is integral at rest and may be fractional mid-movement.
type Regiment struct {
	id     string
	x, y   float64
	facing Direction

	order    Order
	hasOrder bool
	move     *moveState
}

// NewRegiment creates a regiment at rest with no order.
func NewRegiment(id string, x, y float64, facing Direction) *Regiment {
	return &Regiment{
		id:     id,
		x:      x,
		y:      y,
		facing: facing,
	}
}

// ID returns the regiment's stable identifier.
func (r *Regiment) ID() string {
	return r.id
}

// Position returns the current grid position.
func (r *Regiment) Position() (x, y float64) {
	return r.x, r.y
}

// Facing returns the current heading.
func (r *Regiment) Facing() Direction {
	return r.facing
}

// Order returns the current order and whether one is set.
func (r *Regiment) Order() (Order, bool) {
	return r.order, r.hasOrder
}

// SetPosition places the regiment directly, outside the tick pipeline.
func (r *Regiment) SetPosition(x, y float64) {
	r.x = x
	r.y = y
}

// SetFacing forces the regiment's heading.
func (r *Regiment) SetFacing(d Direction) {
	r.facing = d
}

// SetOrder replaces the current order and discards any movement in
// progress, even when the new order has the same kind.
//
// A Rotate order turns the regiment immediately; the order itself stays
// assigned until the next tick consumes it, so the UI can show it as pending.
func (r *Regiment) SetOrder(o Order) {
	r.order = o
	r.hasOrder = true
	r.move = nil

	if o.Kind == OrderRotate {
		r.facing = o.Direction
	}
}

// ClearOrder removes the current order and any movement in progress.
func (r *Regiment) ClearOrder() {
	r.order = Order{}
	r.hasOrder = false
	r.move = nil
}

// IsMoving reports whether a Move order is mid-execution.
func (r *Regiment) IsMoving() bool {
	return r.move != nil
}

// AdvanceTick executes exactly one simulation step.
// The result depends only on the regiment's state and ticksPerTurn.
// Values of ticksPerTurn below 1 are treated as 1.
func (r *Regiment) AdvanceTick(ticksPerTurn int) {
	if !r.hasOrder {
		return
	}
	if ticksPerTurn < 1 {
		ticksPerTurn = 1
	}

	switch r.order.Kind {
	case OrderHold:
		return
	case OrderRotate:
		r.facing = r.order.Direction
		r.ClearOrder()
	case OrderMove:
		r.advanceMove(ticksPerTurn)
	}
}

// advanceMove interpolates linearly from the recorded start toward the target
// and lands exactly on the target when the turn's ticks run out.
func (r *Regiment) advanceMove(ticksPerTurn int) {
	tx := float64(r.order.TargetX)
	ty := float64(r.order.TargetY)

	if r.move == nil {
		if r.x == tx && r.y == ty {
			r.ClearOrder()
			return
		}
		r.move = &moveState{startX: r.x, startY: r.y}
		r.facing = DirectionFromDelta(tx-r.x, ty-r.y)
	}

	r.move.elapsed++
	progress := math.Min(float64(r.move.elapsed)/float64(ticksPerTurn), 1.0)

	if progress >= 1.0 {
		r.x, r.y = tx, ty
		r.ClearOrder()
		return
	}

	r.x = r.move.startX + (tx-r.move.startX)*progress
	r.y = r.move.startY + (ty-r.move.startY)*progress
}

// RegimentSnapshot is a read-only copy of a regiment's observable state.
type RegimentSnapshot struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Facing   string  `json:"facing"`
	Order    string  `json:"order,omitempty"`
	HasOrder bool    `json:"has_order"`
}

// Snapshot captures the regiment's observable state.
func (r *Regiment) Snapshot() RegimentSnapshot {
	s := RegimentSnapshot{
		ID:       r.id,
		X:        r.x,
		Y:        r.y,
		Facing:   r.facing.String(),
		HasOrder: r.hasOrder,
	}
	if r.hasOrder {
		s.Order = r.order.Describe()
	}
	return s
}
