package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

const cellWidth = 3

// BoardView is everything the board screen shows for one frame.
type BoardView struct {
	State     squares.State
	Cursor    squares.Pos
	Remaining time.Duration
	Timed     bool
	Thinking  bool // AI move pending
	Message   string
}

type segment struct {
	text  string
	color core.Color
}

// DrawBoard renders the view centered on dst.
func DrawBoard(dst *core.Screen, v BoardView) {
	dst.Clear()

	st := v.State
	boardW := st.Size*cellWidth + 2
	boardH := st.Size + 2
	layout := dst.Bounds().CenterIn(boardW, boardH+9)
	top := layout.Y

	dst.DrawTextCentered(top, fmt.Sprintf("QUANTUM SQUARES · %s", st.Mode), core.ColorWhite)
	drawSegments(dst, top+2, scoreLine(st))

	box := core.NewRect(layout.X, top+4, boardW, boardH)
	dst.DrawBox(box, core.ColorGray)
	for r, row := range st.Cells {
		for c, cell := range row {
			drawCell(dst, box.X+1+c*cellWidth, box.Y+1+r, cell, seatOf(st, cell.Owner),
				v.Cursor == squares.Pos{Row: r, Col: c})
		}
	}

	y := box.Bottom()
	dst.DrawTextCentered(y, statusLine(v), statusColor(st))
	switch {
	case v.Message != "":
		dst.DrawTextCentered(y+1, v.Message, core.ColorYellow)
	case v.Timed && !st.Over():
		dst.DrawTextCentered(y+1, fmt.Sprintf("Time left: %ds", int(v.Remaining.Round(time.Second)/time.Second)), core.ColorCyan)
	}

	help := "arrows/hjkl: move  ·  enter/space: place  ·  b: menu  ·  q: quit"
	if st.Over() {
		help = "r: play again  ·  b: menu  ·  q: quit"
	}
	dst.DrawTextCentered(y+3, help, core.ColorGray)
}

func drawCell(dst *core.Screen, x, y int, cell squares.Cell, seat int, cursor bool) {
	glyph, color := '·', core.ColorGray
	if !cell.Neutral() {
		glyph, color = rune('0'+cell.Count%10), core.SeatColor(seat)
	}

	left, right, frame := ' ', ' ', core.ColorDefault
	if cursor {
		left, right, frame = '[', ']', core.ColorCursor
	}
	dst.SetCell(x, y, left, frame)
	dst.SetCell(x+1, y, glyph, color)
	dst.SetCell(x+2, y, right, frame)
}

func scoreLine(st squares.State) []segment {
	segs := make([]segment, 0, len(st.Players)*2)
	for i, p := range st.Players {
		if i > 0 {
			segs = append(segs, segment{text: "   "})
		}
		marker := "  "
		if !st.Over() && i == st.Turn {
			marker = "▶ "
		}
		segs = append(segs, segment{
			text:  fmt.Sprintf("%s%s %d", marker, p, st.Scores[p]),
			color: core.SeatColor(i),
		})
	}
	return segs
}

func drawSegments(dst *core.Screen, y int, segs []segment) {
	total := 0
	for _, s := range segs {
		total += len([]rune(s.text))
	}
	x := max((dst.Width()-total)/2, 0)
	for _, s := range segs {
		dst.DrawTextColored(x, y, s.text, s.color)
		x += len([]rune(s.text))
	}
}

func statusLine(v BoardView) string {
	st := v.State
	if st.Over() {
		switch st.Reason {
		case squares.ReasonTimeout:
			return fmt.Sprintf("%s wins on time!", st.Winner)
		default:
			return fmt.Sprintf("%s wins with %d points!", st.Winner, st.Scores[st.Winner])
		}
	}
	if v.Thinking {
		return fmt.Sprintf("%s is thinking…", st.Current())
	}
	return fmt.Sprintf("%s to move", st.Current())
}

func statusColor(st squares.State) core.Color {
	if st.Over() {
		return core.SeatColor(seatOf(st, st.Winner))
	}
	return core.SeatColor(st.Turn)
}

func seatOf(st squares.State, p squares.PlayerID) int {
	for i, id := range st.Players {
		if id == p {
			return i
		}
	}
	return -1
}

// describe turns an engine event into a one-line status message. Events
// that only change the board return an empty string.
func describe(evt squares.Event) string {
	switch e := evt.(type) {
	case squares.TurnPassed:
		return fmt.Sprintf("%s has no legal cell and passes", e.Player)
	case squares.SquareCollapsed:
		return fmt.Sprintf("%s collapsed (%d,%d)", e.Owner, e.Row+1, e.Col+1)
	case squares.GameOver:
		return strings.ToUpper(fmt.Sprintf("game over: %s", e.Reason))
	}
	return ""
}
