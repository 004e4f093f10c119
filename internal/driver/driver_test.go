package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/scenario"
)

type savedTurn struct {
	battleID string
	turn     int
	ticks    int
	snap     battle.Snapshot
}

type memRecorder struct {
	turns []savedTurn
	err   error
}

func (m *memRecorder) SaveTurn(battleID string, turn, ticks int, snap battle.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.turns = append(m.turns, savedTurn{battleID, turn, ticks, snap})
	return nil
}

func newTestBattle() *battle.Battle {
	regs := []*battle.Regiment{
		battle.NewRegiment("a", 0, 0, battle.North),
		battle.NewRegiment("b", 5, 5, battle.South),
	}
	return battle.NewBattle(battle.Options{ID: "test", TicksPerTurn: 10}, regs)
}

func testScript() scenario.Script {
	return scenario.Script{
		{
			{Regiment: "a", Order: battle.Move(4, 0)},
			{Regiment: "b", Order: battle.Rotate(battle.West)},
		},
		{
			{Regiment: "a", Order: battle.Move(4, 4)},
		},
	}
}

func TestRunPlaysScript(t *testing.T) {
	b := newTestBattle()
	rec := &memRecorder{}

	res, err := Run(context.Background(), b, testScript(), Options{Recorder: rec})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Turns != 2 {
		t.Errorf("Turns = %d, expected 2", res.Turns)
	}
	if res.Ticks != 20 {
		t.Errorf("Ticks = %d, expected 20", res.Ticks)
	}

	a, _ := b.Regiment("a")
	if x, y := a.Position(); x != 4 || y != 4 {
		t.Errorf("a at (%v, %v), expected (4, 4)", x, y)
	}
	if a.Facing() != battle.South {
		t.Errorf("a facing %v, expected S", a.Facing())
	}
	bReg, _ := b.Regiment("b")
	if bReg.Facing() != battle.West {
		t.Errorf("b facing %v, expected W", bReg.Facing())
	}

	if len(rec.turns) != 2 {
		t.Fatalf("recorded %d turns, expected 2", len(rec.turns))
	}
	for i, st := range rec.turns {
		if st.battleID != "test" || st.turn != i+1 || st.ticks != 10 {
			t.Errorf("recorded turn %d = %+v", i, st)
		}
		if st.snap.Phase != "PLANNING" {
			t.Errorf("recorded snapshot phase %s, expected PLANNING", st.snap.Phase)
		}
	}
	if res.Final.Turn != 2 {
		t.Errorf("Final.Turn = %d, expected 2", res.Final.Turn)
	}
}

func TestRunExtraTurnsWithoutOrders(t *testing.T) {
	b := newTestBattle()

	res, err := Run(context.Background(), b, testScript(), Options{Turns: 5})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Turns != 5 || b.Controller().Turn() != 5 {
		t.Errorf("Turns = %d, controller turn = %d, expected 5", res.Turns, b.Controller().Turn())
	}
}

func TestRunEmptyScriptPlaysOneTurn(t *testing.T) {
	b := newTestBattle()

	res, err := Run(context.Background(), b, nil, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Turns != 1 {
		t.Errorf("Turns = %d, expected 1", res.Turns)
	}
}

func TestRunSkipsRejectedOrders(t *testing.T) {
	b := newTestBattle()
	script := scenario.Script{
		{
			{Regiment: "ghost", Order: battle.Hold()},
			{Regiment: "a", Order: battle.Move(0, 3)},
		},
	}

	if _, err := Run(context.Background(), b, script, Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	a, _ := b.Regiment("a")
	if _, y := a.Position(); y != 3 {
		t.Errorf("a.y = %v, expected 3", y)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	b := newTestBattle()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &memRecorder{}

	// Cancel from inside the first turn: the turn still finishes.
	b.Controller().Subscribe(func(ev battle.Event) {
		if pc, ok := ev.(battle.PhaseChangedEvent); ok && pc.To == battle.PhaseSimulation {
			cancel()
		}
	})

	res, err := Run(ctx, b, testScript(), Options{Turns: 3, Recorder: rec})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, expected context.Canceled", err)
	}
	if res.Turns != 1 {
		t.Errorf("Turns = %d, expected 1", res.Turns)
	}
	if b.Controller().Phase() != battle.PhasePlanning {
		t.Error("cancelled run left the battle mid-turn")
	}
	if len(rec.turns) != 1 {
		t.Errorf("recorded %d turns, expected 1", len(rec.turns))
	}
}

func TestRunRecorderError(t *testing.T) {
	b := newTestBattle()
	boom := errors.New("disk full")

	_, err := Run(context.Background(), b, testScript(), Options{Recorder: &memRecorder{err: boom}})
	if !errors.Is(err, boom) {
		t.Errorf("Run err = %v, expected wrapped recorder error", err)
	}
	if b.Controller().Turn() != 1 {
		t.Errorf("Run kept going after a recorder error: turn %d", b.Controller().Turn())
	}
}
