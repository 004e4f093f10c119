package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-wego/internal/core"
)

func TestRowRunsSplitOnColorAndShade(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.DrawTextColor(0, 0, "aabbccdd", core.ColorGray)
	// Same foreground, different ground
	s.SetShade(2, 0, core.ColorDarkGreen)
	s.SetShade(3, 0, core.ColorDarkGreen)
	s.SetShade(4, 0, core.ColorBrown)
	s.SetShade(5, 0, core.ColorBrown)
	// A unit keeps the shade under it
	s.SetColor(5, 0, 'X', core.ColorBrightRed)

	got := rowRuns(s, 0)
	expected := []styleRun{
		{cellStyle{core.ColorGray, core.ColorDefault}, "aa"},
		{cellStyle{core.ColorGray, core.ColorDarkGreen}, "bb"},
		{cellStyle{core.ColorGray, core.ColorBrown}, "c"},
		{cellStyle{core.ColorBrightRed, core.ColorBrown}, "X"},
		{cellStyle{core.ColorGray, core.ColorDefault}, "dd"},
	}
	if len(got) != len(expected) {
		t.Fatalf("rowRuns() = %+v, expected %d runs", got, len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("run %d = %+v, expected %+v", i, got[i], expected[i])
		}
	}
}

func TestRowRunsBlankRow(t *testing.T) {
	s := core.NewScreen(5, 1)
	got := rowRuns(s, 0)
	if len(got) != 1 || got[0].text != "     " {
		t.Errorf("rowRuns() = %+v, expected one blank run", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "TURN 1", core.ColorBrightWhite)
	s.DrawTextColor(0, 1, "hills", core.ColorGray)
	s.SetShade(0, 1, core.ColorOlive)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", n)
	}
	for _, want := range []string{"TURN 1", "ills"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteCoversColors(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorDarkGray; c++ {
		if _, ok := palette[c]; !ok {
			t.Errorf("palette has no code for color %d", c)
		}
	}
	if _, ok := palette[core.ColorDefault]; ok {
		t.Error("ColorDefault should use the terminal's own color")
	}
}
