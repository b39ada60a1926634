package match

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// DefaultAIDelay is the simulated thinking time before an AI move.
const DefaultAIDelay = time.Second

// Options configure a match. The zero value is usable.
type Options struct {
	ID         ID            // generated when empty
	AIDelay    time.Duration // zero means DefaultAIDelay
	Seed       int64         // AI randomness; zero means time-based
	Scheduler  Scheduler     // nil means WallClock
	Logger     *log.Logger
	Saver      ResultSaver
	Observer   Observer
	OnComplete func(Result)
}

// Match runs one game. All methods are safe for concurrent use; moves are
// applied one at a time.
type Match struct {
	mu   sync.Mutex
	id   ID
	game *squares.Game
	opts Options
	rng  *rand.Rand
	log  *log.Logger

	clock     *Clock // nil for untimed modes
	ai        Timer
	aiGen     uint64
	aiPending bool

	sinks     []EventSink
	started   bool
	finished  bool
	stopped   bool
	startedAt time.Time
	result    Result
	done      chan struct{}
	doneOnce  sync.Once

	// callbacks queued under mu and run by unlock
	after []func()
}

// New validates cfg and prepares a match. Call Start to begin play.
func New(cfg squares.Config, opts Options) (*Match, error) {
	game, err := squares.New(cfg)
	if err != nil {
		return nil, err
	}

	if opts.ID == "" {
		opts.ID = ID(uuid.NewString())
	}
	if opts.AIDelay <= 0 {
		opts.AIDelay = DefaultAIDelay
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	m := &Match{
		id:   opts.ID,
		game: game,
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		log:  opts.Logger.With("match", string(opts.ID)),
		done: make(chan struct{}),
	}
	if limit := game.Order().TurnLimit(); limit > 0 {
		m.clock = NewClock(opts.Scheduler, locker{m}, m.tick, m.expire)
	}
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() ID {
	return m.id
}

// Subscribe registers a sink for all future events. Sinks whose Done channel
// is closed are dropped on the next publish.
func (m *Match) Subscribe(sink EventSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, sink)
}

// Start announces the first turn and arms the clock or the AI as needed.
// Calling Start twice is a no-op.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.unlock()

	if m.stopped {
		return ErrStopped
	}
	if m.started {
		return nil
	}
	m.started = true
	m.startedAt = time.Now()

	cfg := m.game.Config()
	m.log.Info("match started", "mode", cfg.Mode, "size", cfg.Size, "players", len(cfg.Players))
	m.later(func() { m.opts.Observer.MatchStarted(cfg.Mode) })

	m.publish(squares.TurnChanged{Player: m.game.Current()})
	m.beginTurn()
	return nil
}

// Submit applies a human move. While an AI move is pending it returns
// ErrTurnLocked; engine rejections come back as *squares.MoveError.
func (m *Match) Submit(player squares.PlayerID, row, col int) (squares.MoveResult, error) {
	m.mu.Lock()
	defer m.unlock()

	switch {
	case m.stopped:
		return squares.MoveResult{}, ErrStopped
	case !m.started:
		return squares.MoveResult{}, ErrNotStarted
	case m.aiPending:
		m.reject(player, ErrTurnLocked)
		return squares.MoveResult{}, ErrTurnLocked
	}
	return m.apply(player, row, col)
}

// Snapshot returns the current game state.
func (m *Match) Snapshot() squares.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.State()
}

// Remaining returns the time left on the current turn and whether a
// countdown is running.
func (m *Match) Remaining() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clock == nil {
		return 0, false
	}
	return m.clock.Remaining(), m.clock.Armed()
}

// AIPending reports whether an AI move is scheduled.
func (m *Match) AIPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aiPending
}

// Result returns the outcome once the game is over.
func (m *Match) Result() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.finished
}

// Done returns a channel that closes when the match finishes or is stopped.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Stop abandons the match and cancels its timers. Safe to call multiple
// times and after the game is over.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.unlock()

	if m.stopped {
		return
	}
	m.stopped = true
	m.cancelTimers()
	m.close()

	if !m.finished {
		m.log.Info("match abandoned", "moves", m.game.Moves())
		m.later(m.opts.Observer.MatchAbandoned)
	}
}

// apply runs one move through the engine. Caller holds mu.
func (m *Match) apply(player squares.PlayerID, row, col int) (squares.MoveResult, error) {
	res, err := m.game.ApplyMove(player, row, col)
	if err != nil {
		m.reject(player, err)
		return res, err
	}

	m.log.Debug("move", "player", player, "row", row, "col", col,
		"collapses", res.Collapses, "depth", res.ChainDepth)
	m.later(func() { m.opts.Observer.MoveAccepted(res) })
	m.publish(res.Events...)

	if m.game.Over() {
		m.complete()
	} else {
		m.beginTurn()
	}
	return res, nil
}

func (m *Match) reject(player squares.PlayerID, err error) {
	m.log.Debug("move rejected", "player", player, "err", err)
	m.later(func() { m.opts.Observer.MoveRejected(err) })
}

// beginTurn re-arms the clock and schedules the AI if it is to move.
func (m *Match) beginTurn() {
	if m.clock != nil {
		limit := m.game.Order().TurnLimit()
		m.clock.Arm(limit)
		m.publish(squares.ClockTicked{Player: m.game.Current(), Remaining: limit})
	}
	if m.game.Automated() {
		m.scheduleAI()
	}
}

func (m *Match) scheduleAI() {
	m.cancelAI()
	m.aiPending = true
	gen := m.aiGen
	m.ai = m.opts.Scheduler.AfterFunc(m.opts.AIDelay, func() { m.runAI(gen) })
}

func (m *Match) cancelAI() {
	if m.ai != nil {
		m.ai.Stop()
		m.ai = nil
	}
	m.aiPending = false
	m.aiGen++
}

func (m *Match) runAI(gen uint64) {
	m.mu.Lock()
	defer m.unlock()

	if gen != m.aiGen || !m.aiPending || m.stopped {
		return
	}
	m.ai = nil
	m.aiPending = false

	player := m.game.Current()
	pos, ok := squares.ChooseMove(m.game.Grid(), player, m.rng)
	if !ok {
		m.log.Warn("AI has no legal move", "player", player)
		return
	}
	if _, err := m.apply(player, pos.Row, pos.Col); err != nil {
		m.log.Error("AI move rejected", "player", player, "err", err)
	}
}

// tick and expire are clock callbacks; mu is held.
func (m *Match) tick(remaining time.Duration) {
	m.publish(squares.ClockTicked{Player: m.game.Current(), Remaining: remaining})
}

func (m *Match) expire() {
	loser := m.game.Current()
	events, err := m.game.Forfeit()
	if err != nil {
		return
	}
	m.log.Info("turn timed out", "player", loser)
	m.publish(events...)
	m.complete()
}

// complete records the result and schedules persistence. Caller holds mu.
func (m *Match) complete() {
	if m.finished {
		return
	}
	m.finished = true
	m.cancelTimers()

	st := m.game.State()
	m.result = Result{
		MatchID:   m.id,
		Mode:      st.Mode,
		Size:      st.Size,
		Players:   st.Players,
		Scores:    st.Scores,
		Winner:    st.Winner,
		Reason:    st.Reason,
		Moves:     st.Moves,
		StartedAt: m.startedAt,
		Duration:  time.Since(m.startedAt),
	}
	m.log.Info("match finished", "winner", st.Winner, "reason", st.Reason, "moves", st.Moves)
	m.close()

	result := m.result
	m.later(func() {
		if m.opts.Saver != nil {
			if err := m.opts.Saver.SaveMatchResult(result); err != nil {
				m.log.Error("save result", "err", err)
			}
		}
		m.opts.Observer.MatchFinished(result)
		if m.opts.OnComplete != nil {
			m.opts.OnComplete(result)
		}
	})
}

func (m *Match) cancelTimers() {
	if m.clock != nil {
		m.clock.Cancel()
	}
	m.cancelAI()
}

func (m *Match) close() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

func (m *Match) publish(events ...squares.Event) {
	live := m.sinks[:0]
	for _, s := range m.sinks {
		select {
		case <-s.Done():
			continue
		default:
		}
		for _, e := range events {
			s.Send(e)
		}
		live = append(live, s)
	}
	m.sinks = live
}

// later queues f to run once mu is released.
func (m *Match) later(f func()) {
	m.after = append(m.after, f)
}

func (m *Match) unlock() {
	after := m.after
	m.after = nil
	m.mu.Unlock()
	for _, f := range after {
		f()
	}
}

// locker lets the clock share the match mutex and its deferred callbacks.
type locker struct{ m *Match }

func (l locker) Lock()   { l.m.mu.Lock() }
func (l locker) Unlock() { l.m.unlock() }
