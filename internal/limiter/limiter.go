// Package limiter provides a rough way of limiting events to a fixed rate.
//
// A new Limiter is created with the number of events per second:
//
//	lim := limiter.New(700)
//
// Execution can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		step()
//	}
//
// The limiter sleeps in batches of events, as sleeping for the duration of a single
// event at rates of several hundred events per second is not precise enough.
// Small drift against the wall clock is corrected on every batch.
package limiter

import (
	"time"
)

// minSleep is the shortest duration the limiter sleeps for, events are batched
// until their accumulated duration reaches it.
const minSleep = 2 * time.Millisecond

// Limiter stalls callers to reach a fixed event rate. A rate of 0 disables limiting.
type Limiter struct {
	rate     int
	interval time.Duration // duration of a single event

	pending time.Duration // accumulated event time not yet slept for
	last    time.Time     // time of the last sleep
	now     func() time.Time
	sleep   func(time.Duration)
}

// New returns a limiter for the given number of events per second.
func New(rate int) *Limiter {
	lim := &Limiter{
		now:   time.Now,
		sleep: time.Sleep,
	}
	lim.SetLimit(rate)
	return lim
}

// SetLimit changes the event rate. A rate of 0 or less disables limiting.
func (lim *Limiter) SetLimit(rate int) {
	if rate < 0 {
		rate = 0
	}
	lim.rate = rate
	lim.interval = 0
	if rate > 0 {
		lim.interval = time.Second / time.Duration(rate)
	}
	lim.pending = 0
	lim.last = time.Time{}
}

// Rate returns the configured event rate.
func (lim *Limiter) Rate() int {
	return lim.rate
}

// Wait accounts for one event and blocks once enough events accumulated to
// sleep for the remaining time of the batch.
func (lim *Limiter) Wait() {
	if lim.interval == 0 {
		return
	}

	now := lim.now()
	if lim.last.IsZero() {
		lim.last = now
	}

	lim.pending += lim.interval
	if lim.pending < minSleep {
		return
	}

	// time spent executing since the last sleep counts towards the batch
	remaining := lim.pending - now.Sub(lim.last)
	lim.pending = 0
	if remaining > 0 {
		lim.sleep(remaining)
	}
	// drift of more than a batch is dropped instead of being caught up later
	if remaining < -minSleep {
		remaining = 0
	}
	lim.last = now.Add(remaining)
}
