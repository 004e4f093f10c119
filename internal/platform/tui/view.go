package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-wego/internal/battle"
	"github.com/vovakirdan/tui-wego/internal/core"
)

// Battle view layout
const (
	tileWidth    = 2  // Screen columns per map tile
	sidebarWidth = 30 // Regiment list and event feed
	headerRows   = 1
	statusRows   = 1
)

// targetMode is what the cursor currently points at.
type targetMode int

const (
	modeNormal targetMode = iota // Cursor selects regiments
	modeMove                     // Enter issues a move to the cursor tile
	modeRotate                   // Enter turns the selection toward the cursor
)

func (m targetMode) String() string {
	switch m {
	case modeMove:
		return "MOVE"
	case modeRotate:
		return "ROTATE"
	default:
		return ""
	}
}

// viewState is everything the battle view draws besides the battle itself.
type viewState struct {
	cursorX, cursorY int
	mode             targetMode
	status           string
	events           []string
}

var facingGlyphs = map[battle.Direction]rune{
	battle.North:     '↑',
	battle.NorthEast: '↗',
	battle.East:      '→',
	battle.SouthEast: '↘',
	battle.South:     '↓',
	battle.SouthWest: '↙',
	battle.West:      '←',
	battle.NorthWest: '↖',
}

// terrainGlyphs has one rune per height level, like core.HeightColors.
var terrainGlyphs = []rune{'.', '.', '.', ',', ',', ':', ':', '^', '^', '▲'}

// sizedTerrain is implemented by terrains that know their dimensions.
type sizedTerrain interface {
	Size() (w, h int)
}

// mapSize returns the map dimensions in tiles. Without a sized terrain the
// bounds enclose every regiment.
func mapSize(b *battle.Battle) (w, h int) {
	if st, ok := b.Terrain().(sizedTerrain); ok {
		return st.Size()
	}
	w, h = 1, 1
	for _, r := range b.Regiments() {
		x, y := tileOf(r)
		w = max(w, x+1)
		h = max(h, y+1)
	}
	return w, h
}

// tileOf returns the tile a regiment is drawn on.
func tileOf(r *battle.Regiment) (x, y int) {
	fx, fy := r.Position()
	return int(math.Round(fx)), int(math.Round(fy))
}

// regimentColor colors regiments by the side named in their ID prefix.
func regimentColor(id string) core.Color {
	switch {
	case strings.HasPrefix(id, "red"):
		return core.ColorBrightRed
	case strings.HasPrefix(id, "blue"):
		return core.ColorBrightBlue
	default:
		return core.ColorBrightWhite
	}
}

// viewport returns the visible map area and its scroll offset so that the
// cursor stays on screen.
func viewport(s *core.Screen, mapW, mapH, cursorX, cursorY int) (view core.Rect, offX, offY int) {
	visW := core.Clamp((s.Width()-sidebarWidth-2)/tileWidth, 1, mapW)
	visH := core.Clamp(s.Height()-headerRows-statusRows-2, 1, mapH)

	offX = core.Clamp(cursorX-visW/2, 0, mapW-visW)
	offY = core.Clamp(cursorY-visH/2, 0, mapH-visH)
	return core.NewRect(1, headerRows+1, visW*tileWidth, visH), offX, offY
}

// drawBattle renders the whole battle view into the screen.
func drawBattle(s *core.Screen, b *battle.Battle, v viewState) {
	s.Clear()

	mapW, mapH := mapSize(b)
	view, offX, offY := viewport(s, mapW, mapH, v.cursorX, v.cursorY)

	drawHeader(s, b, v)
	s.DrawBox(core.NewRect(view.X-1, view.Y-1, view.W+2, view.H+2), core.ColorDarkGray)

	// screenPos maps a tile to its first screen column
	screenPos := func(x, y int) (int, int, bool) {
		sx := view.X + (x-offX)*tileWidth
		sy := view.Y + (y - offY)
		return sx, sy, view.Contains(sx, sy)
	}

	for y := offY; y < offY+view.H; y++ {
		for x := offX; x < offX+view.W/tileWidth; x++ {
			sx, sy, _ := screenPos(x, y)
			level := core.Clamp(int(b.HeightAt(x, y, 0)), 0, len(terrainGlyphs)-1)
			// Height shades the whole tile; units drawn later keep it
			s.SetShade(sx, sy, core.HeightColor(level))
			s.SetShade(sx+1, sy, core.HeightColor(level))
			s.SetColor(sx, sy, terrainGlyphs[level], core.ColorDarkGray)
			s.SetColor(sx+1, sy, ' ', core.ColorDefault)
		}
	}

	selected := b.Controller().SelectedRegimentID()

	// Move targets under the regiments so units stay visible
	for _, r := range b.Regiments() {
		o, ok := r.Order()
		if !ok || o.Kind != battle.OrderMove {
			continue
		}
		if sx, sy, ok := screenPos(o.TargetX, o.TargetY); ok {
			c := core.ColorMagenta
			if r.ID() == selected {
				c = core.ColorBrightMagenta
			}
			s.SetColor(sx, sy, '×', c)
		}
	}

	for _, r := range b.Regiments() {
		x, y := tileOf(r)
		sx, sy, ok := screenPos(x, y)
		if !ok {
			continue
		}
		c := regimentColor(r.ID())
		if r.ID() == selected {
			c = core.ColorBrightYellow
		}
		s.SetColor(sx, sy, facingGlyphs[r.Facing()], c)
		s.SetColor(sx+1, sy, idGlyph(r.ID()), c)
	}

	drawCursor(s, b, v, screenPos)
	drawSidebar(s, b, v, view.Right()+2)

	if v.status != "" {
		s.DrawTextColor(0, s.Height()-1, v.status, core.ColorGray)
	}
}

func drawHeader(s *core.Screen, b *battle.Battle, v viewState) {
	ctrl := b.Controller()
	header := fmt.Sprintf("%s  TURN %d  %s", b.ScenarioID(), ctrl.Turn()+1, ctrl.Phase())
	if ctrl.Phase() == battle.PhaseSimulation {
		header += fmt.Sprintf("  tick %d/%d", ctrl.Tick(), ctrl.Simulator().TicksPerTurn())
	}
	if mode := v.mode.String(); mode != "" {
		header += "  [" + mode + "]"
	}
	s.DrawTextColor(0, 0, header, core.ColorBrightWhite)
}

func drawCursor(s *core.Screen, b *battle.Battle, v viewState, screenPos func(x, y int) (int, int, bool)) {
	sx, sy, ok := screenPos(v.cursorX, v.cursorY)
	if !ok {
		return
	}

	if v.mode == modeRotate {
		if r, found := b.Regiment(b.Controller().SelectedRegimentID()); found {
			rx, ry := tileOf(r)
			if rx != v.cursorX || ry != v.cursorY {
				d := battle.DirectionFromDelta(float64(v.cursorX-rx), float64(v.cursorY-ry))
				s.SetColor(sx, sy, facingGlyphs[d], core.ColorBrightCyan)
				s.SetColor(sx+1, sy, '?', core.ColorBrightCyan)
				return
			}
		}
	}

	if _, occupied := b.RegimentAt(v.cursorX, v.cursorY); occupied {
		// Recolor the unit instead of hiding it
		s.SetColor(sx, sy, s.Get(sx, sy), core.ColorBrightCyan)
		s.SetColor(sx+1, sy, s.Get(sx+1, sy), core.ColorBrightCyan)
		return
	}

	left, right := '[', ']'
	if v.mode == modeMove {
		left, right = '<', '>'
	}
	s.SetColor(sx, sy, left, core.ColorBrightCyan)
	s.SetColor(sx+1, sy, right, core.ColorBrightCyan)
}

func drawSidebar(s *core.Screen, b *battle.Battle, v viewState, x int) {
	width := s.Width() - x
	if width < 8 {
		return
	}
	selected := b.Controller().SelectedRegimentID()

	y := headerRows
	s.DrawTextColor(x, y, "Regiments", core.ColorBrightWhite)
	y++
	s.DrawHLine(x, y, width, '─', core.ColorDarkGray)
	y++

	for _, r := range b.Regiments() {
		if y >= s.Height()-statusRows {
			return
		}
		marker := "  "
		c := regimentColor(r.ID())
		if r.ID() == selected {
			marker = "> "
			c = core.ColorBrightYellow
		}
		fx, fy := r.Position()
		line := fmt.Sprintf("%s%s (%.0f,%.0f) %s", marker, r.ID(), fx, fy, r.Facing())
		s.DrawTextColor(x, y, truncate(line, width), c)
		y++

		order := "idle"
		if o, ok := r.Order(); ok {
			order = o.Describe()
		}
		s.DrawTextColor(x+4, y, truncate(order, width-4), core.ColorGray)
		y++
	}

	if len(v.events) == 0 || y+2 >= s.Height()-statusRows {
		return
	}
	y++
	s.DrawTextColor(x, y, "Events", core.ColorBrightWhite)
	y++
	s.DrawHLine(x, y, width, '─', core.ColorDarkGray)
	y++

	// Newest last, as many as fit
	room := s.Height() - statusRows - y
	events := v.events
	if len(events) > room {
		events = events[len(events)-room:]
	}
	for _, e := range events {
		s.DrawTextColor(x, y, truncate(e, width), core.ColorGray)
		y++
	}
}

// idGlyph is the letter drawn next to a regiment's facing arrow.
func idGlyph(id string) rune {
	for _, r := range id {
		return r
	}
	return ' '
}

// truncate cuts text to at most n runes.
func truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
