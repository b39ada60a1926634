package squares

import "math/rand"

// ChooseMove picks uniformly among the cells player may legally use.
// It returns false when there is none.
func ChooseMove(g *Grid, player PlayerID, rng *rand.Rand) (Pos, bool) {
	moves := LegalMoves(g, player)
	if len(moves) == 0 {
		return Pos{}, false
	}
	return moves[rng.Intn(len(moves))], true
}
