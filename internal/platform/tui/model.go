package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/core"
	"github.com/vovakirdan/tui-wego/internal/driver"
)

// maxEvents bounds the event feed shown in the sidebar.
const maxEvents = 50

// eventFeed collects controller events. It is shared by pointer because
// Bubble Tea copies the model on every update.
type eventFeed struct {
	lines []string
}

func (f *eventFeed) add(line string) {
	f.lines = append(f.lines, line)
	if len(f.lines) > maxEvents {
		f.lines = f.lines[len(f.lines)-maxEvents:]
	}
}

// Options configures a battle Model.
type Options struct {
	Config   core.RuntimeConfig
	Recorder driver.TurnRecorder // Optional; receives every resolved turn
	Logger   *log.Logger         // Optional
}

// Model is the Bubble Tea model for playing one battle.
type Model struct {
	battle     *battle.Battle
	screen     *core.Screen
	recorder   driver.TurnRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       BattleKeyMap
	help       help.Model
	view       viewState
	feed       *eventFeed
	clip       func(string) error
	ticks      int // Ticks run in the current simulation phase
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
	unsub      func()
}

// NewModel creates a battle model. The battle is shared, not copied.
func NewModel(b *battle.Battle, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	feed := &eventFeed{}
	unsub := b.Controller().Subscribe(func(ev battle.Event) {
		switch e := ev.(type) {
		case battle.PhaseChangedEvent:
			feed.add(fmt.Sprintf("turn %d: %s", e.Turn+1, e.To))
		case battle.SelectionChangedEvent:
			if e.To == "" {
				feed.add("selection cleared")
			} else {
				feed.add("selected " + e.To)
			}
		}
	})

	m := Model{
		battle:     b,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   opts.Recorder,
		logger:     logger.With("battle", b.ID()),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultBattleKeyMap(),
		help:       help.New(),
		feed:       feed,
		clip:       clipboard.WriteAll,
		unsub:      unsub,
	}
	m.help.Width = cfg.ScreenW

	// Start on the first regiment
	if regs := b.Regiments(); len(regs) > 0 {
		m.view.cursorX, m.view.cursorY = tileOf(regs[0])
	}
	m.view.status = "Plan your orders, then press e to end the turn."
	return m
}

// Init initializes the model. Ticks only run during simulation.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.inputFrame.Push(m.keys.Action(msg))
		return m.applyInput()

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// applyInput drains the input frame in arrival order.
func (m Model) applyInput() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, a := range m.inputFrame.Drain() {
		var cmd tea.Cmd
		m, cmd = m.handleAction(a)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.quitting || m.goingBack {
			break
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleAction(a core.Action) (Model, tea.Cmd) {
	ctrl := m.battle.Controller()

	// Available in every phase
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.close()
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionCopy:
		m.copyReport()
		return m, nil
	case core.ActionCursorUp, core.ActionCursorDown, core.ActionCursorLeft, core.ActionCursorRight:
		m.moveCursor(a.CursorDelta())
		return m, nil
	case core.ActionBack:
		if m.view.mode != modeNormal {
			m.view.mode = modeNormal
			m.view.status = "Targeting cancelled."
			return m, nil
		}
		m.goingBack = true
		m.close()
		return m, tea.Quit
	}

	if ctrl.Phase() != battle.PhasePlanning {
		m.view.status = "Orders are locked while the turn resolves."
		return m, nil
	}

	switch a {
	case core.ActionSelect:
		m.selectAtCursor()
	case core.ActionNextRegiment:
		m.selectNext()
	case core.ActionMove:
		m.beginTargeting(modeMove)
	case core.ActionRotate:
		m.beginTargeting(modeRotate)
	case core.ActionHold:
		m.commandSelected(battle.Hold())
	case core.ActionCancelOrder:
		if id := ctrl.SelectedRegimentID(); id != "" {
			m.report(ctrl.CancelOrder(id), id+": order cancelled")
		}
	case core.ActionConfirm:
		if m.view.mode == modeNormal {
			return m.startTurn()
		}
		m.confirmTarget()
	case core.ActionEndTurn:
		return m.startTurn()
	}
	return m, nil
}

// moveCursor steps the cursor, keeping it on the map.
func (m *Model) moveCursor(dx, dy int) {
	w, h := mapSize(m.battle)
	m.view.cursorX = core.Clamp(m.view.cursorX+dx, 0, w-1)
	m.view.cursorY = core.Clamp(m.view.cursorY+dy, 0, h-1)
}

func (m *Model) selectAtCursor() {
	ctrl := m.battle.Controller()
	r, ok := m.battle.RegimentAt(m.view.cursorX, m.view.cursorY)
	if !ok {
		ctrl.SetSelectedRegimentID("")
		m.view.status = "Nothing here."
		return
	}
	ctrl.SetSelectedRegimentID(r.ID())
	m.view.status = describeRegiment(r)
}

// selectNext cycles the selection through the regiments in advance order.
func (m *Model) selectNext() {
	regs := m.battle.Regiments()
	if len(regs) == 0 {
		return
	}
	current := m.battle.Controller().SelectedRegimentID()
	next := 0
	for i, r := range regs {
		if r.ID() == current {
			next = (i + 1) % len(regs)
			break
		}
	}
	r := regs[next]
	m.battle.Controller().SetSelectedRegimentID(r.ID())
	m.view.cursorX, m.view.cursorY = tileOf(r)
	m.view.mode = modeNormal
	m.view.status = describeRegiment(r)
}

func (m *Model) beginTargeting(mode targetMode) {
	if m.battle.Controller().SelectedRegimentID() == "" {
		m.view.status = "Select a regiment first."
		return
	}
	m.view.mode = mode
	if mode == modeMove {
		m.view.status = "Pick a destination and press enter."
	} else {
		m.view.status = "Point the cursor where the regiment should face and press enter."
	}
}

func (m *Model) confirmTarget() {
	id := m.battle.Controller().SelectedRegimentID()
	r, ok := m.battle.Regiment(id)
	if !ok {
		m.view.mode = modeNormal
		return
	}

	switch m.view.mode {
	case modeMove:
		m.commandSelected(battle.Move(m.view.cursorX, m.view.cursorY))
	case modeRotate:
		rx, ry := tileOf(r)
		if rx == m.view.cursorX && ry == m.view.cursorY {
			m.view.status = "Move the cursor away from the regiment to pick a facing."
			return
		}
		d := battle.DirectionFromDelta(float64(m.view.cursorX-rx), float64(m.view.cursorY-ry))
		m.commandSelected(battle.Rotate(d))
	}
	m.view.mode = modeNormal
}

func (m *Model) commandSelected(o battle.Order) {
	id := m.battle.Controller().SelectedRegimentID()
	if id == "" {
		m.view.status = "Select a regiment first."
		return
	}
	m.report(m.battle.Command(id, o), fmt.Sprintf("%s: %s", id, o.Describe()))
}

// report shows either the error or the success message in the status line.
func (m *Model) report(err error, ok string) {
	switch {
	case err == nil:
		m.view.status = ok
	case errors.Is(err, battle.ErrTargetOutOfBounds):
		m.view.status = "That target is off the map."
	default:
		m.view.status = err.Error()
	}
}

// startTurn hands the planned orders to the simulator and starts ticking.
func (m Model) startTurn() (Model, tea.Cmd) {
	ctrl := m.battle.Controller()
	if ctrl.Phase() != battle.PhasePlanning {
		return m, nil
	}
	m.view.mode = modeNormal
	m.ticks = 0
	ctrl.StartTurn()
	m.view.status = "Resolving turn..."
	m.logger.Debug("turn started", "turn", ctrl.Turn()+1)
	return m, tickCmd(m.config.TickRate)
}

// handleTick runs one simulation tick and ends the turn when it is complete.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	ctrl := m.battle.Controller()
	if m.quitting || ctrl.Phase() != battle.PhaseSimulation {
		return m, nil
	}

	m.ticks++
	if ctrl.AdvanceTick() {
		return m, tickCmd(m.config.TickRate)
	}

	ctrl.EndTurn()
	m.recordTurn()
	m.view.status = fmt.Sprintf("Turn %d resolved. Plan your next orders.", ctrl.Turn())
	return m, nil
}

// recordTurn saves the post-turn snapshot. Failures are logged, play continues.
func (m *Model) recordTurn() {
	snap := m.battle.Snapshot()
	m.logger.Info("turn resolved", "turn", snap.Turn, "ticks", m.ticks)
	if m.recorder == nil {
		return
	}
	if err := m.recorder.SaveTurn(m.battle.ID(), snap.Turn, m.ticks, snap); err != nil {
		m.logger.Warn("cannot record turn", "turn", snap.Turn, "err", err)
	}
}

func (m *Model) copyReport() {
	if err := m.clip(BattleReport(m.battle.Snapshot())); err != nil {
		m.view.status = "Clipboard unavailable: " + err.Error()
		return
	}
	m.view.status = "Battle report copied to clipboard."
}

// close releases the controller subscription.
func (m *Model) close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpView := helpStyle.Render(m.help.View(m.keys))
	helpRows := strings.Count(helpView, "\n") + 1

	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-helpRows, 0))
	v := m.view
	v.events = m.feed.lines
	drawBattle(m.screen, m.battle, v)

	return RenderScreen(m.screen) + "\n" + helpView
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

func describeRegiment(r *battle.Regiment) string {
	x, y := r.Position()
	s := fmt.Sprintf("%s at (%.0f,%.0f) facing %s", r.ID(), x, y, r.Facing())
	if o, ok := r.Order(); ok {
		s += ", " + o.Describe()
	}
	return s
}

// BattleReport formats a snapshot as plain text.
func BattleReport(snap battle.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Battle %s, turn %d (%s)\n", snap.BattleID, snap.Turn, snap.Phase)
	for _, r := range snap.Regiments {
		order := "idle"
		if r.HasOrder {
			order = r.Order
		}
		fmt.Fprintf(&b, "  %-10s (%5.1f,%5.1f) %-2s %s\n", r.ID, r.X, r.Y, r.Facing, order)
	}
	return b.String()
}

// Run plays a battle in the terminal.
// Returns true if the user wants to go back to the menu, false if quitting.
func Run(b *battle.Battle, opts Options) (goBack bool, err error) {
	model := NewModel(b, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	m.close()
	return m.IsGoingBack(), nil
}
