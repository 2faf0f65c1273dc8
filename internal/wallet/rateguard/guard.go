package rateguard

import (
	"sync"
	"time"
)

// Limit configures one endpoint: at most Max admitted attempts per sliding
// Window.
type Limit struct {
	Max    int
	Window time.Duration
}

// Guard throttles faucet and send entry points with a sliding-window
// counter per (endpoint, caller) pair. Caller identity is the recipient
// address for the faucet and source IP + path for send endpoints.
type Guard struct {
	mu     sync.Mutex
	limits map[string]Limit
	hits   map[string][]time.Time
	now    func() time.Time
}

// New creates a Guard from per-endpoint limits.
func New(limits map[string]Limit) *Guard {
	return &Guard{
		limits: limits,
		hits:   map[string][]time.Time{},
		now:    time.Now,
	}
}

// Admit prunes attempts older than the endpoint's window, then admits and
// records the attempt unless the count already meets the maximum. A denied
// attempt does not mutate state. Endpoints without a configured limit are
// always admitted.
func (g *Guard) Admit(endpoint, caller string) bool {
	limit, ok := g.limits[endpoint]
	if !ok || limit.Max <= 0 {
		return true
	}

	key := endpoint + "|" + caller

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cutoff := now.Add(-limit.Window)

	recent := g.hits[key][:0]
	for _, at := range g.hits[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= limit.Max {
		g.hits[key] = recent
		return false
	}

	g.hits[key] = append(recent, now)

	return true
}
