package core

// Action represents a semantic battle command, abstracted from physical key presses.
// This allows the battle view to work with intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionCursorUp           // K, Up arrow
	ActionCursorDown         // J, Down arrow
	ActionCursorLeft         // H, Left arrow
	ActionCursorRight        // L, Right arrow
	ActionSelect             // Space - select the regiment under the cursor
	ActionNextRegiment       // Tab - cycle selection
	ActionMove               // M - target a move with the cursor
	ActionHold               // O - hold position
	ActionRotate             // R - pick a facing
	ActionCancelOrder        // X - drop the pending order
	ActionConfirm            // Enter - confirm target, or end turn when idle
	ActionEndTurn            // E - resolve the turn
	ActionCopy               // Ctrl+Y - copy a snapshot report
	ActionHelp               // ? - toggle full help
	ActionBack               // Esc - leave targeting, then the battle
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionSelect:
		return "Select"
	case ActionNextRegiment:
		return "NextRegiment"
	case ActionMove:
		return "Move"
	case ActionHold:
		return "Hold"
	case ActionRotate:
		return "Rotate"
	case ActionCancelOrder:
		return "CancelOrder"
	case ActionConfirm:
		return "Confirm"
	case ActionEndTurn:
		return "EndTurn"
	case ActionCopy:
		return "Copy"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CursorDelta returns the grid step for a cursor action, or (0, 0).
func (a Action) CursorDelta() (dx, dy int) {
	switch a {
	case ActionCursorUp:
		return 0, -1
	case ActionCursorDown:
		return 0, 1
	case ActionCursorLeft:
		return -1, 0
	case ActionCursorRight:
		return 1, 0
	}
	return 0, 0
}

// InputFrame collects the actions triggered between two renders.
type InputFrame struct {
	// Actions keeps arrival order; planning commands are not commutative.
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an action to this frame. ActionNone is dropped.
func (f *InputFrame) Push(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Drain returns the pending actions and clears the frame.
func (f *InputFrame) Drain() []Action {
	out := f.Actions
	f.Actions = nil
	return out
}
