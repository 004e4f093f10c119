package builtin

import (
	"testing"

	"github.com/vovakirdan/tui-wego/internal/registry"
)

func TestBuiltinScenariosRegistered(t *testing.T) {
	for _, id := range []string{"drill", "hills", "skirmish"} {
		if !registry.Exists(id) {
			t.Errorf("scenario %q not registered", id)
		}
	}
	if got := len(Names()); got != 3 {
		t.Errorf("len(Names()) = %d, expected 3", got)
	}
}

func TestBuiltinScenariosPlayThrough(t *testing.T) {
	for _, info := range registry.List() {
		sc, err := registry.Create(info.ID)
		if err != nil {
			t.Fatalf("Create(%s): %v", info.ID, err)
		}
		b, err := sc.NewBattle("test-"+info.ID, 0)
		if err != nil {
			t.Fatalf("NewBattle(%s): %v", info.ID, err)
		}

		for turn := 0; turn < len(sc.Script)+1; turn++ {
			for _, st := range sc.Script.OrdersFor(turn) {
				if err := b.Command(st.Regiment, st.Order); err != nil {
					t.Errorf("%s turn %d: Command(%s): %v", info.ID, turn+1, st.Regiment, err)
				}
			}
			b.RunTurn()
		}

		for _, r := range b.Regiments() {
			x, y := r.Position()
			if !b.Terrain().IsValidPosition(int(x), int(y)) {
				t.Errorf("%s: %s ended off the map at (%v, %v)", info.ID, r.ID(), x, y)
			}
		}
	}
}

func TestDrillEndsWhereItStarted(t *testing.T) {
	sc, err := registry.Create("drill")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, _ := sc.NewBattle("drill", 0)

	for turn := 0; turn < len(sc.Script); turn++ {
		for _, st := range sc.Script.OrdersFor(turn) {
			_ = b.Command(st.Regiment, st.Order)
		}
		b.RunTurn()
	}

	guard, _ := b.Regiment("guard")
	if x, y := guard.Position(); x != 2 || y != 8 {
		t.Errorf("guard at (%v, %v), expected (2, 8)", x, y)
	}
	if guard.Facing().String() != "W" {
		t.Errorf("guard facing %v, expected W", guard.Facing())
	}
}
