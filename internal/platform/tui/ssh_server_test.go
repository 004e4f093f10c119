package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/registry"
)

func TestStartBattle(t *testing.T) {
	store := openTestStore(t)
	id := registry.List()[0].ID

	b, err := StartBattle(store, id, 7, "local")
	if err != nil {
		t.Fatalf("StartBattle() error = %v", err)
	}
	if b.ScenarioID() != id {
		t.Errorf("ScenarioID() = %q, expected %q", b.ScenarioID(), id)
	}
	if got := b.Controller().Simulator().TicksPerTurn(); got != 7 {
		t.Errorf("TicksPerTurn() = %d, expected 7", got)
	}

	rec, err := store.Battle(b.ID())
	if err != nil || rec == nil {
		t.Fatalf("Battle(%q) = %v, %v", b.ID(), rec, err)
	}
	if rec.Source != "local" || rec.TicksPerTurn != 7 {
		t.Errorf("record = %+v, expected source local with 7 ticks", rec)
	}
}

func TestStartBattleWithoutStore(t *testing.T) {
	id := registry.List()[0].ID

	a, err := StartBattle(nil, id, 0, "local")
	if err != nil {
		t.Fatalf("StartBattle() error = %v", err)
	}
	b, err := StartBattle(nil, id, 0, "local")
	if err != nil {
		t.Fatalf("StartBattle() error = %v", err)
	}
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("battle IDs %q and %q should be unique", a.ID(), b.ID())
	}
	if a.Controller().Phase() != battle.PhasePlanning {
		t.Errorf("new battle phase = %v, expected PLANNING", a.Controller().Phase())
	}

	if _, err := StartBattle(nil, "no-such-scenario", 0, "local"); err == nil {
		t.Error("unknown scenario should fail")
	}
}

func TestRecorderNilStore(t *testing.T) {
	if Recorder(nil) != nil {
		t.Error("Recorder(nil) should be a nil interface")
	}
	if Recorder(openTestStore(t)) == nil {
		t.Error("Recorder(store) should not be nil")
	}
}

func sendSession(t *testing.T, m SessionModel, msgs ...any) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(SessionModel); !ok {
			t.Fatalf("Update returned %T, expected SessionModel", next)
		}
	}
	return m
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	m := NewSessionModel(store, testConfig(), log.New(io.Discard))

	if m.current != screenMenu {
		t.Fatalf("session starts on %v, expected the menu", m.current)
	}

	m = sendSession(t, m, keyEnter)
	if m.current != screenBattle || m.battle == nil {
		t.Fatal("enter should start a battle")
	}
	battles, err := store.RecentBattles(10)
	if err != nil || len(battles) != 1 || battles[0].Source != "ssh" {
		t.Fatalf("RecentBattles() = %+v, %v, expected one ssh battle", battles, err)
	}

	// Play one turn through the session
	m = sendSession(t, m, keyRunes("e"))
	for i := 0; m.battle.battle.Controller().Phase() == battle.PhaseSimulation; i++ {
		if i > 1000 {
			t.Fatal("turn never completed")
		}
		m = sendSession(t, m, TickMsg{})
	}
	turns, err := store.Turns(battles[0].ID)
	if err != nil || len(turns) != 1 {
		t.Errorf("Turns() = %d, %v, expected 1 recorded turn", len(turns), err)
	}

	// Leaving the battle returns to the menu instead of quitting
	m = sendSession(t, m, keyEsc)
	if m.current != screenMenu || m.quitting {
		t.Fatal("esc in a battle should return to the menu")
	}

	m = sendSession(t, m, keyTab)
	if m.current != screenHistory || m.history == nil {
		t.Fatal("tab should open the history")
	}
	if len(m.history.battles) != 1 {
		t.Errorf("history shows %d battles, expected 1", len(m.history.battles))
	}

	m = sendSession(t, m, keyEsc)
	if m.current != screenMenu {
		t.Fatal("esc in the history should return to the menu")
	}

	m = sendSession(t, m, keyRunes("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionResizeCarriesIntoBattle(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), log.New(io.Discard))

	m = sendSession(t, m, tea.WindowSizeMsg{Width: 90, Height: 40}, keyEnter)
	if m.battle == nil {
		t.Fatal("enter should start a battle")
	}
	if cfg := m.battle.Config(); cfg.ScreenW != 90 || cfg.ScreenH != 40 {
		t.Errorf("battle config = %+v, expected 90x40", cfg)
	}
}
