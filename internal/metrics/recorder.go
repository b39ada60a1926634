// Package metrics exposes match statistics to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// Recorder collects match metrics. Labels are bounded: modes, end reasons
// and rejection reasons are fixed sets, never player names.
type Recorder struct {
	reg *prometheus.Registry

	started         *prometheus.CounterVec
	finished        *prometheus.CounterVec
	abandoned       prometheus.Counter
	active          prometheus.Gauge
	movesAccepted   prometheus.Counter
	movesRejected   *prometheus.CounterVec
	collapses       prometheus.Counter
	chainDepth      prometheus.Histogram
	sessionRejected *prometheus.CounterVec
}

// NewRecorder registers all collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		started: f.NewCounterVec(prometheus.CounterOpts{
			Name: "squares_matches_started_total",
			Help: "Matches started",
		}, []string{"mode"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "squares_matches_finished_total",
			Help: "Matches that reached a winner",
		}, []string{"mode", "reason"}),
		abandoned: f.NewCounter(prometheus.CounterOpts{
			Name: "squares_matches_abandoned_total",
			Help: "Matches stopped before a winner",
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Name: "squares_matches_active",
			Help: "Matches currently in progress",
		}),
		movesAccepted: f.NewCounter(prometheus.CounterOpts{
			Name: "squares_moves_accepted_total",
			Help: "Placements applied",
		}),
		movesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "squares_moves_rejected_total",
			Help: "Placements refused",
		}, []string{"reason"}),
		collapses: f.NewCounter(prometheus.CounterOpts{
			Name: "squares_collapses_total",
			Help: "Cells collapsed",
		}),
		chainDepth: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "squares_chain_depth",
			Help:    "Deepest pending collapse per move",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		sessionRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "squares_ssh_sessions_rejected_total",
			Help: "SSH sessions refused",
		}, []string{"reason"}),
	}
}

// Registry returns the registry to serve.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// MatchStarted implements match.Observer.
func (r *Recorder) MatchStarted(mode squares.Mode) {
	r.started.WithLabelValues(mode.String()).Inc()
	r.active.Inc()
}

// MoveAccepted implements match.Observer.
func (r *Recorder) MoveAccepted(res squares.MoveResult) {
	r.movesAccepted.Inc()
	r.collapses.Add(float64(res.Collapses))
	r.chainDepth.Observe(float64(res.ChainDepth))
}

// MoveRejected implements match.Observer.
func (r *Recorder) MoveRejected(err error) {
	r.movesRejected.WithLabelValues(rejectReason(err)).Inc()
}

// MatchFinished implements match.Observer.
func (r *Recorder) MatchFinished(res match.Result) {
	r.finished.WithLabelValues(res.Mode.String(), res.Reason.String()).Inc()
	r.active.Dec()
}

// MatchAbandoned implements match.Observer.
func (r *Recorder) MatchAbandoned() {
	r.abandoned.Inc()
	r.active.Dec()
}

// SessionRejected counts an SSH session refused for reason.
// reason must be one of: "rate_limit", "no_pty"
func (r *Recorder) SessionRejected(reason string) {
	r.sessionRejected.WithLabelValues(reason).Inc()
}

var _ match.Observer = (*Recorder)(nil)

func rejectReason(err error) string {
	switch {
	case errors.Is(err, squares.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, squares.ErrCellOwned):
		return "cell_owned"
	case errors.Is(err, squares.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, squares.ErrGameOver):
		return "game_over"
	case errors.Is(err, match.ErrTurnLocked):
		return "turn_locked"
	default:
		return "other"
	}
}
