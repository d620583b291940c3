package grid

import "time"

// MinLoadingDisplay is how long the loading indicator lingers after the
// caller reports that loading finished.
const MinLoadingDisplay = 2000 * time.Millisecond

// Clock is the time source for the loading gate.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// LoadingGate keeps the loading indicator up for at least a fixed hold after
// loading drops, so fast responses do not flash the table.
type LoadingGate struct {
	clock   Clock
	hold    time.Duration
	loading bool
	until   time.Time
	gen     int
}

// NewLoadingGate returns a gate using clock, or the system clock when nil.
func NewLoadingGate(clock Clock, hold time.Duration) LoadingGate {
	if clock == nil {
		clock = SystemClock{}
	}
	return LoadingGate{clock: clock, hold: hold}
}

// Set records the caller's loading flag. When loading drops from true it
// starts the hold and returns its length; otherwise it returns 0. Raising
// the flag again cancels any pending hold.
func (g *LoadingGate) Set(loading bool) time.Duration {
	if loading {
		if !g.loading {
			g.gen++
		}
		g.loading = true
		g.until = time.Time{}
		return 0
	}
	if !g.loading {
		return 0
	}
	g.loading = false
	g.until = g.now().Add(g.hold)
	g.gen++
	return g.hold
}

// Active reports whether the indicator should be shown.
func (g LoadingGate) Active() bool {
	if g.loading {
		return true
	}
	return !g.until.IsZero() && g.now().Before(g.until)
}

// Remaining is the time left in the current hold, or 0.
func (g LoadingGate) Remaining() time.Duration {
	if g.loading || g.until.IsZero() {
		return 0
	}
	if d := g.until.Sub(g.now()); d > 0 {
		return d
	}
	return 0
}

// Generation changes on every transition. Scheduled expiry ticks carry it so
// a tick from a cancelled hold is ignored.
func (g LoadingGate) Generation() int { return g.gen }

func (g LoadingGate) now() time.Time {
	if g.clock == nil {
		return time.Now()
	}
	return g.clock.Now()
}
