package core

// Color is a foreground color for a screen cell.
// The platform maps these onto terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightBlue
	ColorOrange
	ColorGray
)
