package common

import (
	"sync"
	"time"

	"github.com/Qthai16/queue-lab/utils"
)

var _TimerPool sync.Pool

func BorrowTimer(d time.Duration) *time.Timer {
	x := _TimerPool.Get()
	if x == nil {
		return time.NewTimer(d)
	}
	t := x.(*time.Timer)
	if t.Reset(d) {
		utils.LogFatal("[timer_pool] pool returned an active timer")
	}
	return t
}

func ReturnTimer(t *time.Timer) {
	if !t.Stop() && len(t.C) != 0 {
		<-t.C
	}
	_TimerPool.Put(t)
}

// Watchdog tells whether a piece of synchronous work outlived its deadline.
// It does not interrupt the work.
type Watchdog struct {
	t       *time.Timer
	limit   time.Duration
	started time.Time
}

// StartWatchdog arms a watchdog for limit. A non-positive limit never expires.
func StartWatchdog(limit time.Duration) *Watchdog {
	w := &Watchdog{limit: limit, started: time.Now()}
	if limit > 0 {
		w.t = BorrowTimer(limit)
	}
	return w
}

// Stop disarms the watchdog and reports whether the deadline had passed,
// along with the elapsed time.
func (w *Watchdog) Stop() (expired bool, elapsed time.Duration) {
	elapsed = time.Since(w.started)
	if w.t == nil {
		return false, elapsed
	}
	select {
	case <-w.t.C:
		expired = true
	default:
		expired = elapsed >= w.limit
	}
	ReturnTimer(w.t)
	w.t = nil
	return expired, elapsed
}
