package match

import (
	"sync"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Clock is the per-turn countdown of rapid games. At most one timer is
// pending at any time. All methods except the timer callback expect the
// caller to hold the lock passed to NewClock.
type Clock struct {
	sched    Scheduler
	lock     sync.Locker
	step     time.Duration
	onTick   func(remaining time.Duration)
	onExpire func()

	timer     Timer
	gen       uint64
	remaining time.Duration
	armed     bool
}

// NewClock creates a stopped clock. onTick runs after every step with the
// time left; onExpire runs once when it reaches zero. Both run with lock held.
func NewClock(sched Scheduler, lock sync.Locker, onTick func(time.Duration), onExpire func()) *Clock {
	return &Clock{
		sched:    sched,
		lock:     lock,
		step:     TickInterval,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Arm cancels any running countdown and starts a fresh one of length limit.
func (c *Clock) Arm(limit time.Duration) {
	c.Cancel()
	c.remaining = limit
	c.armed = true
	c.schedule()
}

// Cancel stops the countdown. Cancelling a stopped clock is a no-op.
func (c *Clock) Cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.armed = false
	c.gen++
}

// Remaining returns the time left on the current turn.
func (c *Clock) Remaining() time.Duration {
	return c.remaining
}

// Armed reports whether a countdown is running.
func (c *Clock) Armed() bool {
	return c.armed
}

func (c *Clock) schedule() {
	gen := c.gen
	step := min(c.step, c.remaining)
	c.timer = c.sched.AfterFunc(step, func() { c.fire(gen, step) })
}

func (c *Clock) fire(gen uint64, step time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	// A callback from a cancelled countdown may still run once.
	if gen != c.gen || !c.armed {
		return
	}
	c.timer = nil
	c.remaining -= step

	if c.remaining <= 0 {
		c.remaining = 0
		c.armed = false
		c.gen++
		c.onTick(0)
		c.onExpire()
		return
	}

	c.onTick(c.remaining)
	c.schedule()
}
