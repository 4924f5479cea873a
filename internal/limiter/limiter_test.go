package limiter

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func newTestLimiter(rate int, clock *time.Time, slept *time.Duration) *Limiter {
	lim := New(rate)
	lim.now = func() time.Time { return *clock }
	lim.sleep = func(d time.Duration) {
		*slept += d
		*clock = clock.Add(d)
	}
	return lim
}

func TestLimiterDisabled(t *testing.T) {
	lim := New(0)
	assert.Equal(t, 0, lim.Rate())
	lim.Wait() // must not block
}

func TestLimiterSleepsForBatch(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept time.Duration
	lim := newTestLimiter(1000, &clock, &slept)

	// 1000 events per second, a batch of 2 events reaches the minimum sleep
	lim.Wait()
	assert.Equal(t, time.Duration(0), slept)
	lim.Wait()
	assert.Equal(t, 2*time.Millisecond, slept)
}

func TestLimiterAccountsExecutionTime(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept time.Duration
	lim := newTestLimiter(1000, &clock, &slept)

	lim.Wait()
	clock = clock.Add(1500 * time.Microsecond) // time spent executing
	lim.Wait()
	assert.Equal(t, 500*time.Microsecond, slept)
}

func TestLimiterSetLimit(t *testing.T) {
	lim := New(60)
	assert.Equal(t, 60, lim.Rate())
	lim.SetLimit(-5)
	assert.Equal(t, 0, lim.Rate())
}
