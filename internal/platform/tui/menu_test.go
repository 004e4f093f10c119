package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-wego/internal/core"
	"github.com/vovakirdan/tui-wego/internal/registry"
	_ "github.com/vovakirdan/tui-wego/internal/scenario/builtin"
	"github.com/vovakirdan/tui-wego/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "battles.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 120, ScreenH: 30, TickRate: 10}
}

func TestMenuListsRegisteredScenarios(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	if len(m.items) != len(registry.List()) {
		t.Fatalf("menu has %d items, expected %d", len(m.items), len(registry.List()))
	}
	for i, info := range registry.List() {
		if m.items[i].ScenarioID != info.ID {
			t.Errorf("item %d = %q, expected %q", i, m.items[i].ScenarioID, info.ID)
		}
		if m.items[i].Played != "" {
			t.Errorf("item %d played = %q without a store", i, m.items[i].Played)
		}
	}

	view := m.View()
	if !strings.Contains(view, "W E G O") {
		t.Error("menu view missing title")
	}
	if !strings.Contains(view, m.items[0].Title) {
		t.Errorf("menu view missing %q", m.items[0].Title)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(keyDown)
	next, _ = next.(MenuModel).Update(keyEnter)
	m = next.(MenuModel)

	if m.Selected() == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if got, want := m.Selected().ScenarioID, registry.List()[1].ID; got != want {
		t.Errorf("Selected() = %q, expected %q", got, want)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(keyUp)
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, expected 0", m.cursor)
	}

	for range len(m.items) + 3 {
		next, _ = m.Update(keyDown)
		m = next.(MenuModel)
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(keyTab)
	if !next.(MenuModel).WantsHistory() {
		t.Error("tab should open the history")
	}

	next, _ = m.Update(keyRunes("q"))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
	if next.(MenuModel).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestMenuPlayedSummary(t *testing.T) {
	store := openTestStore(t)
	id := registry.List()[0].ID
	for range 2 {
		if _, err := store.CreateBattle(id, 10, "local"); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMenuModel(store, testConfig())
	if !strings.HasPrefix(m.items[0].Played, "2 battles, last ") {
		t.Errorf("Played = %q, expected a two battle summary", m.items[0].Played)
	}
	if len(m.items) > 1 && m.items[1].Played != "" {
		t.Errorf("unplayed scenario has summary %q", m.items[1].Played)
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if cfg := next.(MenuModel).Config(); cfg.ScreenW != 60 || cfg.ScreenH != 20 {
		t.Errorf("Config() = %+v, expected 60x20", cfg)
	}
}
