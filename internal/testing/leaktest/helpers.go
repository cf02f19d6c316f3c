package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleInterval = 10 * time.Millisecond
	defaultSettle  = time.Second
)

// GoroutineChecker detects goroutines left running by workers, timers and
// pools once a test has shut them down
type GoroutineChecker struct {
	before int
	settle time.Duration
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleInterval)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		settle: defaultSettle,
		t:      t,
	}
}

// WithSettle changes how long Check waits for goroutines to exit
func (g *GoroutineChecker) WithSettle(d time.Duration) *GoroutineChecker {
	g.settle = d
	return g
}

// Check fails the test if more than tolerance goroutines are still running
// after the settle period. It returns as soon as the count drops back.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.settle)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		runtime.GC()
		time.Sleep(settleInterval)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
