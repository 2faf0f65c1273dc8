package nonce

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/seimcp/go-wallet/internal/wallet/chain"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type key struct {
	network derive.Network
	address string
}

// entry tracks the next nonce to hand out for one (network, address).
// Its mutex only ever guards this entry, so an authoritative fetch for an
// unknown address never blocks reservations for other senders.
type entry struct {
	mu           sync.Mutex
	initialized  bool
	next         uint64
	lastIssuedAt time.Time
}

// Coordinator issues strictly increasing transaction nonces per
// (network, address). Issued nonces are never reused, even when the signing
// attempt later fails to broadcast, unless an explicit resync against the
// network-reported nonce occurs.
type Coordinator struct {
	mu      sync.Mutex
	entries map[key]*entry
	clients map[derive.Network]chain.Client
}

// NewCoordinator creates a Coordinator backed by the per-network clients
// used to fetch authoritative nonces.
func NewCoordinator(clients map[derive.Network]chain.Client) *Coordinator {
	return &Coordinator{
		entries: map[key]*entry{},
		clients: clients,
	}
}

// Reserve returns the next nonce for the sender and advances the counter.
// The first reservation for an unknown (network, address) queries the
// network once and caches the authoritative value as the baseline.
func (c *Coordinator) Reserve(ctx context.Context, network derive.Network, address string) (uint64, error) {
	e := c.entry(network, address)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		authoritative, err := c.fetch(ctx, network, address)
		if err != nil {
			return 0, err
		}
		e.next = authoritative
		e.initialized = true
	}

	n := e.next
	e.next++
	e.lastIssuedAt = time.Now()

	return n, nil
}

// ReleaseOnFailure rolls the counter back after a definite pre-broadcast
// failure (signing error, never sent). The rollback only applies when the
// nonce is the most recently issued one; otherwise the gap stands, which is
// safe for the network and healed by a later resync. Returns whether the
// rollback happened.
func (c *Coordinator) ReleaseOnFailure(network derive.Network, address string, n uint64) bool {
	e := c.entry(network, address)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.next == 0 || n != e.next-1 {
		return false
	}

	e.next--

	return true
}

// Resync force-refetches the authoritative nonce and overwrites local
// state. Required after any "nonce too low/high" rejection and after any
// timed-out submission, whose chain-side outcome is unknown.
func (c *Coordinator) Resync(ctx context.Context, network derive.Network, address string) error {
	// Fetch before taking the entry lock; only the overwrite is serialized.
	authoritative, err := c.fetch(ctx, network, address)
	if err != nil {
		return err
	}

	e := c.entry(network, address)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.next = authoritative
	e.initialized = true

	log.Debug().
		Str("network", string(network)).
		Str("address", address).
		Uint64("nonce", authoritative).
		Msg("Nonce state resynced from network")

	return nil
}

func (c *Coordinator) fetch(ctx context.Context, network derive.Network, address string) (uint64, error) {
	client, ok := c.clients[network]
	if !ok {
		return 0, errors.Errorf("no client configured for network %q", network)
	}

	authoritative, err := client.GetNonce(ctx, address)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to fetch authoritative nonce for %s", address)
	}

	return authoritative, nil
}

func (c *Coordinator) entry(network derive.Network, address string) *entry {
	k := key{network: network, address: strings.ToLower(address)}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}

	return e
}
