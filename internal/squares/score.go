package squares

// ScoreTracker accumulates points per player. Scores only ever increase.
type ScoreTracker struct {
	order  []PlayerID
	scores map[PlayerID]int
}

// NewScoreTracker starts every player at zero.
func NewScoreTracker(players []PlayerID) *ScoreTracker {
	s := &ScoreTracker{
		order:  append([]PlayerID(nil), players...),
		scores: make(map[PlayerID]int, len(players)),
	}
	for _, p := range players {
		s.scores[p] = 0
	}
	return s
}

// Credit awards one point to player and returns the resulting event.
func (s *ScoreTracker) Credit(player PlayerID) ScoreChanged {
	s.scores[player]++
	return ScoreChanged{Player: player, Score: s.scores[player]}
}

// Score returns the player's current points.
func (s *ScoreTracker) Score(player PlayerID) int {
	return s.scores[player]
}

// Total returns the sum of all points awarded.
func (s *ScoreTracker) Total() int {
	total := 0
	for _, v := range s.scores {
		total += v
	}
	return total
}

// Snapshot returns a copy of the score table.
func (s *ScoreTracker) Snapshot() map[PlayerID]int {
	out := make(map[PlayerID]int, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (s *ScoreTracker) Clone() *ScoreTracker {
	return &ScoreTracker{
		order:  s.order,
		scores: s.Snapshot(),
	}
}
