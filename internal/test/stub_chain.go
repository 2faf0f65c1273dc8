package test

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// StubChain is an in-memory chain client for server tests. It hands out a
// fixed starting nonce, a fixed balance and accepts every submission.
type StubChain struct {
	mu        sync.Mutex
	nonce     uint64
	balance   *big.Int
	submitted [][]byte
}

func NewStubChain() *StubChain {
	return &StubChain{
		nonce:   3,
		balance: big.NewInt(1_000_000_000),
	}
}

func (s *StubChain) GetNonce(_ context.Context, _ string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonce, nil
}

func (s *StubChain) GetBalance(_ context.Context, _ string) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.balance), nil
}

func (s *StubChain) SubmitTx(_ context.Context, rawTx []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, rawTx)
	return fmt.Sprintf("0x%064x", len(s.submitted)), nil
}

// SubmittedCount reports how many transactions the stub accepted.
func (s *StubChain) SubmittedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submitted)
}

// StubAccounts serves fixed native account metadata.
type StubAccounts struct{}

func (StubAccounts) AccountInfo(_ context.Context, _ string) (uint64, uint64, error) {
	return 42, 3, nil
}
