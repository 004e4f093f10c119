package battle

// Event is a notification emitted by the Controller.
// Delivery is synchronous: observers run after the state change and
// before the mutating call returns.
type Event interface {
	battleEvent()
}

// PhaseChangedEvent is emitted on every phase transition.
type PhaseChangedEvent struct {
	From Phase
	To   Phase
	Turn int // Number of completed turns after the transition
}

func (PhaseChangedEvent) battleEvent() {}

// SelectionChangedEvent is emitted when the selected regiment changes.
type SelectionChangedEvent struct {
	From string // Empty means nothing was selected
	To   string
}

func (SelectionChangedEvent) battleEvent() {}

// Observer receives controller events.
type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}
