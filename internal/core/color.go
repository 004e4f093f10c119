package core

// Color represents a foreground or shade color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for battlefield elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGreen
	ColorOlive
	ColorBrown
	ColorDarkGray
)

// HeightColors shades terrain from low ground to high ground.
var HeightColors = []Color{
	ColorDarkGreen,
	ColorDarkGreen,
	ColorGreen,
	ColorGreen,
	ColorOlive,
	ColorOlive,
	ColorYellow,
	ColorBrown,
	ColorBrown,
	ColorWhite,
}

// HeightColor returns the shade for a terrain level, clamped to the palette.
func HeightColor(level int) Color {
	return HeightColors[Clamp(level, 0, len(HeightColors)-1)]
}
