package scenario_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/scenario"
)

// getTestdataPath returns path to testdata.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := scenario.NewLoader(getTestdataPath())

	scs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml is skipped, README.txt is ignored
	if len(scs) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(scs))
	}
	if scs[0].ID != "crossing" || scs[1].ID != "hills" {
		t.Errorf("unexpected order: %s, %s", scs[0].ID, scs[1].ID)
	}
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := scenario.NewLoader(getTestdataPath()).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "crossing" || ids[1] != "hills" {
		t.Errorf("ListIDs() = %v, expected [crossing hills]", ids)
	}
}

func TestLoaderLoadCrossing(t *testing.T) {
	sc, err := scenario.NewLoader(getTestdataPath()).LoadByID("crossing")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if sc.Name != "River Crossing" {
		t.Errorf("expected Name 'River Crossing', got %q", sc.Name)
	}
	if sc.Width != 8 || sc.Height != 4 {
		t.Errorf("expected 8x4, got %dx%d", sc.Width, sc.Height)
	}
	if sc.TicksPerTurn != 10 {
		t.Errorf("expected 10 ticks per turn, got %d", sc.TicksPerTurn)
	}
	if len(sc.Regiments) != 2 {
		t.Fatalf("expected 2 regiments, got %d", len(sc.Regiments))
	}

	blue := sc.Regiments[0]
	if blue.Facing != battle.East {
		t.Errorf("blue facing = %v, expected E", blue.Facing)
	}
	if blue.Order == nil || blue.Order.Kind != battle.OrderMove || blue.Order.TargetX != 7 {
		t.Errorf("blue order = %+v, expected move to (7,0)", blue.Order)
	}

	if len(sc.Script) != 2 || len(sc.Script[1]) != 2 {
		t.Fatalf("unexpected script shape: %+v", sc.Script)
	}
	if st := sc.Script[0][0]; st.Regiment != "red-1" || st.Order != battle.Rotate(battle.NorthWest) {
		t.Errorf("turn 1 step = %+v", st)
	}
}

func TestLoaderLoadFileInvalid(t *testing.T) {
	loader := scenario.NewLoader(getTestdataPath())

	_, err := loader.LoadFile(filepath.Join(getTestdataPath(), "broken.yaml"))
	if !errors.Is(err, scenario.ErrInvalid) {
		t.Errorf("LoadFile(broken) err = %v, expected ErrInvalid", err)
	}

	if _, err := loader.LoadByID("nope"); err == nil {
		t.Error("LoadByID of a missing scenario should fail")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "map: {w: 2, h: 2}"},
		{"empty map", "id: x\nmap: {w: 0, h: 2}"},
		{"duplicate regiment", "id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0}, {id: a, x: 1, y: 1}]"},
		{"order off map", "id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0, order: {kind: move, x: 5, y: 0}}]"},
		{"script unknown regiment", "id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0}]\nturns: [[{regiment: b, kind: hold}]]"},
		{"script off map", "id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0}]\nturns: [[{regiment: a, kind: move, x: 0, y: 3}]]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.yaml))
			if !errors.Is(err, scenario.ErrInvalid) {
				t.Errorf("Parse err = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	bad := []string{
		"id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0, facing: up}]",
		"id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0, order: {kind: charge}}]",
		"id: x\nmap: {w: 2, h: 2}\nregiments: [{id: a, x: 0, y: 0, order: {kind: rotate}}]",
		"id: [",
	}
	for _, src := range bad {
		if _, err := scenario.Parse([]byte(src)); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}

func TestScenarioTerrain(t *testing.T) {
	loader := scenario.NewLoader(getTestdataPath())

	crossing, err := loader.LoadByID("crossing")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	grid, err := crossing.Terrain()
	if err != nil {
		t.Fatalf("Terrain failed: %v", err)
	}
	if h, _ := grid.TileHeight(4, 1); h != 3 {
		t.Errorf("TileHeight(4, 1) = %v, expected 3", h)
	}

	hills, err := loader.LoadByID("hills")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	g1, _ := hills.Terrain()
	g2, _ := hills.Terrain()
	if g1.W != 16 || g1.H != 8 {
		t.Errorf("generated grid %dx%d, expected 16x8", g1.W, g1.H)
	}
	for i, row := range g1.Rows() {
		if row != g2.Rows()[i] {
			t.Fatalf("seeded terrain not deterministic at row %d", i)
		}
	}
}

func TestScenarioNewBattle(t *testing.T) {
	sc, err := scenario.NewLoader(getTestdataPath()).LoadByID("crossing")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	b, err := sc.NewBattle("b-1", 0)
	if err != nil {
		t.Fatalf("NewBattle failed: %v", err)
	}
	if b.ID() != "b-1" || b.ScenarioID() != "crossing" {
		t.Errorf("battle ids = %q/%q", b.ID(), b.ScenarioID())
	}
	if b.Controller().Simulator().TicksPerTurn() != 10 {
		t.Errorf("ticks per turn = %d, expected 10", b.Controller().Simulator().TicksPerTurn())
	}

	if got := b.RunTurn(); got != 10 {
		t.Errorf("RunTurn() = %d, expected 10", got)
	}
	blue, _ := b.Regiment("blue-1")
	if x, y := blue.Position(); x != 7 || y != 0 {
		t.Errorf("blue at (%v, %v), expected (7, 0)", x, y)
	}

	// A second battle starts from the scenario again.
	b2, _ := sc.NewBattle("b-2", 25)
	blue2, _ := b2.Regiment("blue-1")
	if x, _ := blue2.Position(); x != 0 {
		t.Errorf("second battle shares state: x = %v", x)
	}
	if b2.Controller().Simulator().TicksPerTurn() != 25 {
		t.Errorf("override ignored: %d", b2.Controller().Simulator().TicksPerTurn())
	}
}

func TestScriptOrdersFor(t *testing.T) {
	sc, err := scenario.NewLoader(getTestdataPath()).LoadByID("crossing")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if got := len(sc.Script.OrdersFor(1)); got != 2 {
		t.Errorf("OrdersFor(1) has %d steps, expected 2", got)
	}
	if sc.Script.OrdersFor(2) != nil || sc.Script.OrdersFor(-1) != nil {
		t.Error("out-of-range turns should have no orders")
	}
}
