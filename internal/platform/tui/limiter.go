package tui

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleAfter is how long an idle host keeps its limiter.
const staleAfter = 10 * time.Minute

type hostLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SessionLimiter caps how often one remote host may open sessions.
type SessionLimiter struct {
	mu       sync.Mutex
	hosts    map[string]*hostLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
	lastScan time.Time
}

// NewSessionLimiter allows perMinute sessions per host with a burst of the
// same size. perMinute <= 0 disables limiting.
func NewSessionLimiter(perMinute int) *SessionLimiter {
	l := &SessionLimiter{
		hosts: make(map[string]*hostLimiter),
		limit: rate.Inf,
		burst: 1,
		now:   time.Now,
	}
	if perMinute > 0 {
		l.limit = rate.Limit(float64(perMinute) / 60)
		l.burst = perMinute
	}
	return l
}

// Allow reports whether addr may open another session now.
func (l *SessionLimiter) Allow(addr net.Addr) bool {
	host := hostOf(addr)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > staleAfter {
		l.prune(now)
	}

	h, ok := l.hosts[host]
	if !ok {
		h = &hostLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.hosts[host] = h
	}
	h.lastSeen = now
	return h.limiter.AllowN(now, 1)
}

// prune forgets hosts idle for longer than staleAfter. Caller holds mu.
func (l *SessionLimiter) prune(now time.Time) {
	for host, h := range l.hosts {
		if now.Sub(h.lastSeen) > staleAfter {
			delete(l.hosts, host)
		}
	}
	l.lastScan = now
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
