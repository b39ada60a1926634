package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. ColorCursor renders with a highlighted background.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorGray
	ColorCursor
)

// seatColors is the palette for players in turn order.
var seatColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// SeatColor returns the color of the player in the given seat.
// Seats beyond the palette wrap around.
func SeatColor(seat int) Color {
	if seat < 0 {
		return ColorDefault
	}
	return seatColors[seat%len(seatColors)]
}
