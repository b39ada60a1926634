package squares

// MoveResult reports everything one accepted move produced.
type MoveResult struct {
	Player     PlayerID
	Pos        Pos
	Events     []Event
	Collapses  int
	ChainDepth int
	Winner     PlayerID // NoPlayer while the game continues
}

// State is a detached snapshot of a game.
type State struct {
	Mode    Mode
	Size    int
	Cells   [][]Cell
	Players []PlayerID
	Turn    int
	Scores  map[PlayerID]int
	Winner  PlayerID
	Reason  EndReason
	Moves   int
}

// Current returns the player to move.
func (s State) Current() PlayerID {
	return s.Players[s.Turn]
}

// Over reports whether the snapshot is terminal.
func (s State) Over() bool {
	return s.Winner != NoPlayer
}

// Game is one match of Quantum Squares. It is not safe for concurrent use;
// the match controller serialises access.
type Game struct {
	cfg    Config
	order  TurnOrder
	grid   *Grid
	scores *ScoreTracker
	turn   int
	winner PlayerID
	reason EndReason
	moves  int
}

// New validates cfg and creates a game with an empty board. The first
// configured player moves first.
func New(cfg Config) (*Game, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:    cfg,
		order:  NewTurnOrder(cfg),
		grid:   NewGrid(cfg.Size),
		scores: NewScoreTracker(cfg.Players),
	}, nil
}

// Config returns the normalised configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// Order returns the turn-order strategy.
func (g *Game) Order() TurnOrder {
	return g.order
}

// Players returns the seats in turn order.
func (g *Game) Players() []PlayerID {
	return append([]PlayerID(nil), g.cfg.Players...)
}

// Current returns the player to move.
func (g *Game) Current() PlayerID {
	return g.cfg.Players[g.turn]
}

// Automated reports whether the current seat is driven by the AI.
func (g *Game) Automated() bool {
	return g.order.Controller(g.turn) == ControllerAutomated
}

// Over reports whether a winner has been declared.
func (g *Game) Over() bool {
	return g.winner != NoPlayer
}

// Winner returns the winner and why, or NoPlayer and ReasonNone.
func (g *Game) Winner() (PlayerID, EndReason) {
	return g.winner, g.reason
}

// Score returns a player's points.
func (g *Game) Score(p PlayerID) int {
	return g.scores.Score(p)
}

// Moves returns the number of accepted placements.
func (g *Game) Moves() int {
	return g.moves
}

// Grid returns a copy of the board.
func (g *Game) Grid() *Grid {
	return g.grid.Clone()
}

// State returns a detached snapshot.
func (g *Game) State() State {
	return State{
		Mode:    g.cfg.Mode,
		Size:    g.grid.Size(),
		Cells:   g.grid.Rows(),
		Players: g.Players(),
		Turn:    g.turn,
		Scores:  g.scores.Snapshot(),
		Winner:  g.winner,
		Reason:  g.reason,
		Moves:   g.moves,
	}
}

// ApplyMove places a particle for player at (row, col), resolves every chain
// reaction, checks for a winner and advances the turn. On error the game is
// untouched and the error is a *MoveError.
func (g *Game) ApplyMove(player PlayerID, row, col int) (MoveResult, error) {
	if err := g.check(player, row, col); err != nil {
		return MoveResult{}, &MoveError{Player: player, Row: row, Col: col, Err: err}
	}

	rec := &recorder{}
	grid := g.grid.Clone()
	scores := g.scores.Clone()
	pos := Pos{Row: row, Col: col}

	res := Resolve(grid, pos, player, scores, rec.emit)

	g.grid = grid
	g.scores = scores
	g.moves++

	if winner, ok := DetectWinner(g.cfg.Players, g.scores, TargetScore); ok {
		g.finish(winner, ReasonScoreThreshold, rec.emit)
	} else {
		g.advance(rec.emit)
	}

	return MoveResult{
		Player:     player,
		Pos:        pos,
		Events:     rec.events,
		Collapses:  res.Collapses,
		ChainDepth: res.ChainDepth,
		Winner:     g.winner,
	}, nil
}

// Forfeit ends the game because the current player ran out of time. The
// next seat in turn order wins regardless of score.
func (g *Game) Forfeit() ([]Event, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	rec := &recorder{}
	winner := g.cfg.Players[g.order.Next(g.turn)]
	g.finish(winner, ReasonTimeout, rec.emit)
	return rec.events, nil
}

func (g *Game) check(player PlayerID, row, col int) error {
	if g.Over() {
		return ErrGameOver
	}
	if player != g.Current() {
		return ErrNotYourTurn
	}
	return Validate(g.grid, row, col, player, false)
}

func (g *Game) finish(winner PlayerID, reason EndReason, emit func(Event)) {
	g.winner = winner
	g.reason = reason
	emit(GameOver{Winner: winner, Reason: reason})
}

// advance moves the turn on, skipping seats that have no legal cell.
func (g *Game) advance(emit func(Event)) {
	next := g.order.Next(g.turn)
	for i := 0; i < len(g.cfg.Players)-1; i++ {
		if HasLegalMove(g.grid, g.cfg.Players[next]) {
			break
		}
		emit(TurnPassed{Player: g.cfg.Players[next]})
		next = g.order.Next(next)
	}
	g.turn = next
	emit(TurnChanged{Player: g.cfg.Players[next]})
}
