package match

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

type savedResults struct {
	mu      sync.Mutex
	results []Result
}

func (s *savedResults) SaveMatchResult(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func newMatch(t *testing.T, cfg squares.Config, opts Options) (*Match, *manualScheduler, *ChannelSink) {
	t.Helper()
	sched := &manualScheduler{}
	opts.Scheduler = sched
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	m, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sink := NewChannelSink(1024)
	m.Subscribe(sink)
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m, sched, sink
}

func drain(s *ChannelSink) []squares.Event {
	var out []squares.Event
	for {
		select {
		case e := <-s.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func rapidConfig() squares.Config {
	return squares.Config{Size: 5, Mode: squares.ModeRapid, Players: []squares.PlayerID{"Red", "Blue"}}
}

func TestStartAnnouncesFirstTurn(t *testing.T) {
	m, _, sink := newMatch(t, squares.Config{
		Size: 5, Mode: squares.ModeHeadToHead, Players: []squares.PlayerID{"Red", "Blue"},
	}, Options{ID: "m1"})

	if m.ID() != "m1" {
		t.Errorf("ID() = %q, want m1", m.ID())
	}
	want := []squares.Event{squares.TurnChanged{Player: "Red"}}
	if got := drain(sink); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %#v, want %#v", got, want)
	}
	if _, ok := m.Remaining(); ok {
		t.Error("untimed match reports a running clock")
	}
	if err := m.Start(); err != nil {
		t.Errorf("second Start: %v", err)
	}
}

func TestSubmitBeforeStart(t *testing.T) {
	m, err := New(rapidConfig(), Options{Scheduler: &manualScheduler{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.Submit("Red", 0, 0); !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v, want ErrNotStarted", err)
	}
}

func TestRapidTimeoutForfeits(t *testing.T) {
	saver := &savedResults{}
	var completed []Result
	m, sched, sink := newMatch(t, rapidConfig(), Options{
		Saver:      saver,
		OnComplete: func(r Result) { completed = append(completed, r) },
	})
	drain(sink)

	sched.Advance(9 * time.Second)
	if left, ok := m.Remaining(); !ok || left != time.Second {
		t.Fatalf("Remaining() = %v, %v; want 1s running", left, ok)
	}

	sched.Advance(time.Second)

	events := drain(sink)
	var ticks []time.Duration
	for _, e := range events {
		if ct, ok := e.(squares.ClockTicked); ok {
			ticks = append(ticks, ct.Remaining)
		}
	}
	if len(ticks) != 10 || ticks[0] != 9*time.Second || ticks[9] != 0 {
		t.Errorf("ticks = %v, want 9s down to 0", ticks)
	}

	wantOver := squares.GameOver{Winner: "Blue", Reason: squares.ReasonTimeout}
	if got := events[len(events)-1]; got != wantOver {
		t.Errorf("last event = %#v, want %#v", got, wantOver)
	}

	select {
	case <-m.Done():
	default:
		t.Error("Done() not closed after timeout")
	}
	if sched.Pending() != 0 {
		t.Errorf("%d timers still pending", sched.Pending())
	}

	res, ok := m.Result()
	if !ok || res.Winner != "Blue" || res.Reason != squares.ReasonTimeout {
		t.Errorf("Result() = %+v, %v", res, ok)
	}
	if len(saver.results) != 1 || len(completed) != 1 {
		t.Errorf("saved %d results, completed %d times; want 1 each", len(saver.results), len(completed))
	}

	if _, err := m.Submit("Red", 0, 0); !errors.Is(err, squares.ErrGameOver) {
		t.Errorf("late move err = %v, want ErrGameOver", err)
	}
}

func TestRapidMoveRearmsClock(t *testing.T) {
	m, sched, _ := newMatch(t, rapidConfig(), Options{})

	sched.Advance(5 * time.Second)
	if _, err := m.Submit("Red", 0, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if left, _ := m.Remaining(); left != squares.DefaultTurnLimit {
		t.Errorf("Remaining() after move = %v, want %v", left, squares.DefaultTurnLimit)
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one timer", sched.Pending())
	}

	sched.Advance(9 * time.Second)
	if snap := m.Snapshot(); snap.Over() {
		t.Fatal("game over before the re-armed clock expired")
	}

	sched.Advance(time.Second)
	snap := m.Snapshot()
	if snap.Winner != "Red" || snap.Reason != squares.ReasonTimeout {
		t.Errorf("winner = %q reason = %v, want Red by timeout", snap.Winner, snap.Reason)
	}
}

func TestCustomTurnLimit(t *testing.T) {
	cfg := rapidConfig()
	cfg.TurnLimit = 3 * time.Second
	m, sched, _ := newMatch(t, cfg, Options{})

	sched.Advance(3 * time.Second)
	if !m.Snapshot().Over() {
		t.Error("3s turn limit did not expire")
	}
}

func TestAITurnLocksHumanInput(t *testing.T) {
	m, sched, _ := newMatch(t, squares.Config{
		Size: 5, Mode: squares.ModeVsAI, Players: []squares.PlayerID{"You"},
	}, Options{Seed: 99})

	if _, err := m.Submit("You", 2, 2); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !m.AIPending() {
		t.Fatal("AI move not scheduled")
	}
	if _, err := m.Submit("You", 0, 0); !errors.Is(err, ErrTurnLocked) {
		t.Errorf("err = %v, want ErrTurnLocked", err)
	}

	sched.Advance(DefaultAIDelay - time.Millisecond)
	if m.Snapshot().Moves != 1 {
		t.Fatal("AI moved before its delay")
	}

	sched.Advance(time.Millisecond)
	snap := m.Snapshot()
	if snap.Moves != 2 || snap.Current() != "You" {
		t.Errorf("after AI: moves = %d current = %q", snap.Moves, snap.Current())
	}
	if m.AIPending() {
		t.Error("AI still pending after moving")
	}
	if snap.Cells[2][2].Owner != "You" {
		t.Errorf("human cell lost: %+v", snap.Cells[2][2])
	}
}

func TestAIMovesAreReproducible(t *testing.T) {
	play := func() [][]squares.Cell {
		m, sched, _ := newMatch(t, squares.Config{
			Size: 6, Mode: squares.ModeVsAI, Players: []squares.PlayerID{"You"},
		}, Options{Seed: 1234})
		for i := 0; i < 5; i++ {
			pos := firstLegal(m.Snapshot(), "You")
			if _, err := m.Submit("You", pos.Row, pos.Col); err != nil {
				t.Fatalf("Submit: %v", err)
			}
			sched.Advance(DefaultAIDelay)
		}
		return m.Snapshot().Cells
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different boards")
	}
}

func firstLegal(st squares.State, player squares.PlayerID) squares.Pos {
	for r, row := range st.Cells {
		for c, cell := range row {
			if cell.Owner == squares.NoPlayer || cell.Owner == player {
				return squares.Pos{Row: r, Col: c}
			}
		}
	}
	return squares.Pos{}
}

type countingObserver struct {
	started, accepted, rejected, finished, abandoned int
}

func (o *countingObserver) MatchStarted(squares.Mode)       { o.started++ }
func (o *countingObserver) MoveAccepted(squares.MoveResult) { o.accepted++ }
func (o *countingObserver) MoveRejected(error)              { o.rejected++ }
func (o *countingObserver) MatchFinished(Result)            { o.finished++ }
func (o *countingObserver) MatchAbandoned()                 { o.abandoned++ }

func TestStopCancelsEverything(t *testing.T) {
	obs := &countingObserver{}
	m, sched, _ := newMatch(t, squares.Config{
		Size: 5, Mode: squares.ModeVsAI, Players: []squares.PlayerID{"You"},
	}, Options{Observer: obs})

	if _, err := m.Submit("You", 1, 1); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := m.Submit("You", 7, 7); err == nil {
		t.Fatal("expected rejection while AI pending")
	}

	m.Stop()
	m.Stop()

	if sched.Pending() != 0 {
		t.Errorf("%d timers pending after Stop", sched.Pending())
	}
	sched.Advance(time.Minute)
	if m.Snapshot().Moves != 1 {
		t.Error("AI moved after Stop")
	}
	if _, err := m.Submit("You", 0, 0); !errors.Is(err, ErrStopped) {
		t.Errorf("err = %v, want ErrStopped", err)
	}
	select {
	case <-m.Done():
	default:
		t.Error("Done() not closed after Stop")
	}

	want := countingObserver{started: 1, accepted: 1, rejected: 1, abandoned: 1}
	if *obs != want {
		t.Errorf("observer = %+v, want %+v", *obs, want)
	}
}

func TestRejectedMoveKeepsTurn(t *testing.T) {
	m, _, sink := newMatch(t, squares.Config{
		Size: 5, Mode: squares.ModeHeadToHead, Players: []squares.PlayerID{"Red", "Blue"},
	}, Options{})
	drain(sink)

	_, err := m.Submit("Blue", 0, 0)
	var me *squares.MoveError
	if !errors.As(err, &me) || !errors.Is(err, squares.ErrNotYourTurn) {
		t.Fatalf("err = %v, want not-your-turn MoveError", err)
	}
	if got := drain(sink); len(got) != 0 {
		t.Errorf("rejected move published %d events", len(got))
	}
	if m.Snapshot().Current() != "Red" {
		t.Error("turn changed after rejection")
	}
}

func TestClosedSinkIsDropped(t *testing.T) {
	m, _, sink := newMatch(t, squares.Config{
		Size: 5, Mode: squares.ModeHeadToHead, Players: []squares.PlayerID{"Red", "Blue"},
	}, Options{})
	drain(sink)
	sink.Close()

	if _, err := m.Submit("Red", 0, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := drain(sink); len(got) != 0 {
		t.Errorf("closed sink received %d events", len(got))
	}
}
