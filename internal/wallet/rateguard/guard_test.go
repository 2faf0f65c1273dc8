package rateguard_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github/seimcp/go-wallet/internal/wallet/rateguard"
)

func newGuardAt(limits map[string]rateguard.Limit, at *time.Time) *rateguard.Guard {
	g := rateguard.New(limits)
	g.SetNowFunc(func() time.Time { return *at })
	return g
}

func TestAdmitEnforcesMaxPerWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newGuardAt(map[string]rateguard.Limit{
		"faucet": {Max: 2, Window: time.Hour},
	}, &now)

	assert.True(t, g.Admit("faucet", "sei1recipient"))
	assert.True(t, g.Admit("faucet", "sei1recipient"))
	assert.False(t, g.Admit("faucet", "sei1recipient"))
}

func TestAdmitWindowSlides(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newGuardAt(map[string]rateguard.Limit{
		"faucet": {Max: 1, Window: time.Hour},
	}, &now)

	assert.True(t, g.Admit("faucet", "sei1recipient"))
	assert.False(t, g.Admit("faucet", "sei1recipient"))

	now = now.Add(time.Hour + time.Second)
	assert.True(t, g.Admit("faucet", "sei1recipient"), "attempts older than the window must be pruned")
}

func TestDeniedAttemptDoesNotExtendWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newGuardAt(map[string]rateguard.Limit{
		"faucet": {Max: 1, Window: time.Hour},
	}, &now)

	assert.True(t, g.Admit("faucet", "sei1recipient"))

	// Hammering while denied must not push the reset point out.
	for i := 0; i < 10; i++ {
		now = now.Add(5 * time.Minute)
		g.Admit("faucet", "sei1recipient")
	}

	now = now.Add(15 * time.Minute) // 65 minutes after the single admit
	assert.True(t, g.Admit("faucet", "sei1recipient"))
}

func TestCallersAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newGuardAt(map[string]rateguard.Limit{
		"faucet": {Max: 1, Window: time.Hour},
	}, &now)

	assert.True(t, g.Admit("faucet", "sei1alice"))
	assert.True(t, g.Admit("faucet", "sei1bob"))
	assert.False(t, g.Admit("faucet", "sei1alice"))
}

func TestEndpointsAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newGuardAt(map[string]rateguard.Limit{
		"faucet": {Max: 1, Window: time.Hour},
		"send":   {Max: 2, Window: time.Minute},
	}, &now)

	assert.True(t, g.Admit("faucet", "10.0.0.1"))
	assert.False(t, g.Admit("faucet", "10.0.0.1"))

	assert.True(t, g.Admit("send", "10.0.0.1"))
	assert.True(t, g.Admit("send", "10.0.0.1"))
	assert.False(t, g.Admit("send", "10.0.0.1"))
}

func TestUnconfiguredEndpointAlwaysAdmits(t *testing.T) {
	g := rateguard.New(nil)
	for i := 0; i < 100; i++ {
		assert.True(t, g.Admit("balance", "10.0.0.1"))
	}
}

func TestAdmitIsSafeUnderConcurrency(t *testing.T) {
	g := rateguard.New(map[string]rateguard.Limit{
		"send": {Max: 50, Window: time.Hour},
	})

	var wg sync.WaitGroup
	admitted := make([]bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			admitted[i] = g.Admit("send", fmt.Sprintf("caller-%d", i%2))
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range admitted {
		if ok {
			count++
		}
	}
	// Two callers at 50 each, 50 attempts apiece: all admitted, no panic,
	// no lost updates.
	assert.Equal(t, 100, count)
}
