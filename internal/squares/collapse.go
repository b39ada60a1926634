package squares

// Resolution summarises one placement.
type Resolution struct {
	Collapses  int // cells that collapsed, one point each
	ChainDepth int // deepest nesting of pending collapses
}

// frame is one pending collapse whose neighbours are being fed.
type frame struct {
	owner     PlayerID
	neighbors []Pos
	next      int
}

// Resolve places one particle for player at p and settles every chain
// reaction before returning. The placement must already be validated.
//
// Collapses are processed depth-first from an explicit stack: each neighbour
// is fed in up, down, left, right order and, the moment it reaches Threshold,
// its own collapse runs before the remaining neighbours of its parent. The
// board loses particles at every edge or corner collapse, so the cascade
// always terminates (the sandpile argument).
func Resolve(g *Grid, p Pos, player PlayerID, scores *ScoreTracker, emit func(Event)) Resolution {
	var res Resolution

	cell := g.At(p.Row, p.Col)
	cell.Count++
	cell.Owner = player
	g.set(p, cell)
	emit(CellUpdated{Row: p.Row, Col: p.Col, Count: cell.Count, Owner: cell.Owner})

	if cell.Count < Threshold {
		return res
	}

	stack := []frame{collapse(g, p, scores, emit)}
	res.Collapses = 1
	res.ChainDepth = 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}

		n := top.neighbors[top.next]
		top.next++

		nc := g.At(n.Row, n.Col)
		nc.Count++
		// Only a neutral neighbour is claimed; an owned one keeps its owner.
		if nc.Owner == NoPlayer {
			nc.Owner = top.owner
		}
		g.set(n, nc)
		emit(CellUpdated{Row: n.Row, Col: n.Col, Count: nc.Count, Owner: nc.Owner})

		if nc.Count >= Threshold {
			stack = append(stack, collapse(g, n, scores, emit))
			res.Collapses++
			if len(stack) > res.ChainDepth {
				res.ChainDepth = len(stack)
			}
		}
	}

	return res
}

// collapse credits the owner of p, empties it and returns the frame that will
// feed its neighbours.
func collapse(g *Grid, p Pos, scores *ScoreTracker, emit func(Event)) frame {
	owner := g.At(p.Row, p.Col).Owner
	emit(SquareCollapsed{Owner: owner, Row: p.Row, Col: p.Col})
	emit(scores.Credit(owner))

	g.set(p, Cell{})
	emit(CellUpdated{Row: p.Row, Col: p.Col, Count: 0, Owner: NoPlayer})

	return frame{owner: owner, neighbors: g.Neighbors(p)}
}
