package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to terminal colours; cells that need an
// arbitrary colour (balloons) carry an RGB hex string instead.
type Color uint8

// Predefined colors for game elements.
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
	ColorOrange
	ColorGray
)
