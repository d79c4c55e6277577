/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package demo is a small in-memory wallet service whose handlers raise
// every kind of fault the dispatcher handles. It backs the end-to-end tests
// and the faultsd serve command.
package demo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
)

// Wallet is a stored wallet. Balance is in minor units.
type Wallet struct {
	ID      int64  `json:"id"`
	IBAN    string `json:"iban"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Balance int64  `json:"balance"`
}

// Store keeps wallets in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*Wallet
	byIBAN map[string]int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[int64]*Wallet),
		byIBAN: make(map[string]int64),
	}
}

// Create stores a new wallet. A wallet with the same IBAN or the same name
// already existing is a conflict.
func (s *Store) Create(_ context.Context, w Wallet) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byIBAN[w.IBAN]; ok {
		return Wallet{}, faults.AlreadyExists(fmt.Sprintf("Wallet with IBAN %s already exists", w.IBAN)).
			WithDetail("iban", w.IBAN)
	}
	for _, existing := range s.byID {
		if existing.Name == w.Name && existing.Email == w.Email {
			return Wallet{}, faults.Validation(apis.FieldError{Field: "name", Message: "is already used by another wallet of this owner"})
		}
	}

	s.nextID++
	w.ID = s.nextID
	stored := w
	s.byID[w.ID] = &stored
	s.byIBAN[w.IBAN] = w.ID
	return w, nil
}

// Get returns the wallet with id.
func (s *Store) Get(_ context.Context, id int64) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.byID[id]
	if !ok {
		return Wallet{}, faults.NotFound(fmt.Sprintf("Requested wallet is not found (id: %d)", id))
	}
	return *w, nil
}

// List returns up to limit wallets ordered by id.
func (s *Store) List(_ context.Context, limit int) []Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Wallet, 0, len(s.byID))
	for _, w := range s.byID {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Withdraw takes amount from the wallet with id.
func (s *Store) Withdraw(_ context.Context, id, amount int64) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.byID[id]
	if !ok {
		return Wallet{}, faults.NotFound(fmt.Sprintf("Requested wallet is not found (id: %d)", id))
	}
	if w.Balance < amount {
		return Wallet{}, faults.InsufficientFunds("Insufficient funds").
			WithDetails(map[string]any{"wallet_id": id, "balance": w.Balance, "amount": amount})
	}
	w.Balance -= amount
	return *w, nil
}
