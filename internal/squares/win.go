package squares

// DetectWinner scans players in seat order and returns the first whose score
// has reached target. Ties inside one move go to the earlier seat.
func DetectWinner(players []PlayerID, scores *ScoreTracker, target int) (PlayerID, bool) {
	for _, p := range players {
		if scores.Score(p) >= target {
			return p, true
		}
	}
	return NoPlayer, false
}
