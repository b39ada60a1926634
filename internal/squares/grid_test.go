package squares

import (
	"reflect"
	"testing"
)

func setCell(g *Grid, row, col, count int, owner PlayerID) {
	g.set(Pos{row, col}, Cell{Count: count, Owner: owner})
}

func TestNewGridIsNeutral(t *testing.T) {
	g := NewGrid(5)
	if g.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", g.Size())
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if cell := g.At(r, c); cell != (Cell{}) {
				t.Errorf("At(%d,%d) = %+v, want neutral", r, c, cell)
			}
		}
	}
	if g.Particles() != 0 {
		t.Errorf("Particles() = %d, want 0", g.Particles())
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := NewGrid(5)

	tests := []struct {
		name string
		pos  Pos
		want []Pos
	}{
		{"top-left corner", Pos{0, 0}, []Pos{{1, 0}, {0, 1}}},
		{"bottom-right corner", Pos{4, 4}, []Pos{{3, 4}, {4, 3}}},
		{"top edge", Pos{0, 2}, []Pos{{1, 2}, {0, 1}, {0, 3}}},
		{"left edge", Pos{2, 0}, []Pos{{1, 0}, {3, 0}, {2, 1}}},
		{"interior", Pos{2, 2}, []Pos{{1, 2}, {3, 2}, {2, 1}, {2, 3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Neighbors(tc.pos)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Neighbors(%v) = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(5)
	setCell(g, 1, 1, 2, "R")

	c := g.Clone()
	setCell(c, 1, 1, 3, "B")

	if g.At(1, 1) != (Cell{Count: 2, Owner: "R"}) {
		t.Errorf("original mutated through clone: %+v", g.At(1, 1))
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := NewGrid(5)
	for _, p := range []Pos{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if g.InBounds(p.Row, p.Col) {
			t.Errorf("InBounds(%d,%d) = true, want false", p.Row, p.Col)
		}
		if cell := g.At(p.Row, p.Col); cell != (Cell{}) {
			t.Errorf("At(%d,%d) = %+v, want neutral", p.Row, p.Col, cell)
		}
	}
}

func TestValidate(t *testing.T) {
	g := NewGrid(5)
	setCell(g, 0, 0, 2, "R")
	setCell(g, 0, 1, 1, "B")

	tests := []struct {
		name     string
		row, col int
		player   PlayerID
		terminal bool
		want     error
	}{
		{"neutral cell", 3, 3, "R", false, nil},
		{"own cell", 0, 0, "R", false, nil},
		{"opponent cell", 0, 1, "R", false, ErrCellOwned},
		{"row out of bounds", 5, 0, "R", false, ErrOutOfBounds},
		{"negative column", 0, -1, "R", false, ErrOutOfBounds},
		{"game over", 3, 3, "R", true, ErrGameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(g, tc.row, tc.col, tc.player, tc.terminal)
			if got != tc.want {
				t.Errorf("Validate(%d,%d,%q) = %v, want %v", tc.row, tc.col, tc.player, got, tc.want)
			}
		})
	}
}

func TestLegalMoves(t *testing.T) {
	g := NewGrid(5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			setCell(g, r, c, 1, "B")
		}
	}
	setCell(g, 2, 3, 1, "R")
	setCell(g, 4, 4, 0, NoPlayer)

	got := LegalMoves(g, "R")
	want := []Pos{{2, 3}, {4, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LegalMoves = %v, want %v", got, want)
	}
	if !HasLegalMove(g, "B") {
		t.Error("HasLegalMove(B) = false, want true")
	}

	setCell(g, 4, 4, 1, "B")
	setCell(g, 2, 3, 1, "B")
	if HasLegalMove(g, "R") {
		t.Error("HasLegalMove(R) = true on a board owned by B")
	}
}
