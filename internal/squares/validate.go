package squares

// Validate checks whether player may place a particle at (row, col).
// It returns nil or one of ErrGameOver, ErrOutOfBounds, ErrCellOwned.
func Validate(g *Grid, row, col int, player PlayerID, terminal bool) error {
	if terminal {
		return ErrGameOver
	}
	if !g.InBounds(row, col) {
		return ErrOutOfBounds
	}
	owner := g.At(row, col).Owner
	if owner != NoPlayer && owner != player {
		return ErrCellOwned
	}
	return nil
}

// LegalMoves returns every cell player may place on, in row-major order.
func LegalMoves(g *Grid, player PlayerID) []Pos {
	var moves []Pos
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			owner := g.At(r, c).Owner
			if owner == NoPlayer || owner == player {
				moves = append(moves, Pos{r, c})
			}
		}
	}
	return moves
}

// HasLegalMove reports whether player has at least one legal cell.
func HasLegalMove(g *Grid, player PlayerID) bool {
	for _, c := range g.cells {
		if c.Owner == NoPlayer || c.Owner == player {
			return true
		}
	}
	return false
}
