package rateguard

import "time"

// SetNowFunc swaps the clock for tests.
func (g *Guard) SetNowFunc(now func() time.Time) {
	g.now = now
}
