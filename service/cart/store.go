// Package cart holds the shopping cart state machine and its persistence.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mixtape.GO/model/repository/storage"
)

// ErrNotLoaded is returned by mutations issued before Load completed.
var ErrNotLoaded = errors.New("cart: not loaded")

// Store is one cart persisted under a single storage key.
// Load must run once before any mutation; until then nothing is written.
type Store struct {
	mu      sync.Mutex
	driver  storage.Driver
	key     string
	log     *zap.Logger
	entries []Entry
	open    bool
	ready   bool
}

func NewStore(driver storage.Driver, key string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{driver: driver, key: key, log: log, entries: []Entry{}}
}

func (s *Store) Key() string {
	return s.key
}

// Load rehydrates the cart from storage. A missing record is an empty cart.
// Read or decode failures are logged and leave the cart empty; the store is
// usable afterwards either way. Later calls are no-ops.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	s.ready = true
	s.entries = []Entry{}

	raw, ok, err := s.driver.Get(ctx, s.key)
	if err != nil {
		// the store stays usable; the next mutation replaces the unread record
		s.log.Error("cart load failed", zap.String("key", s.key), zap.Bool("next_save_overwrites", true), zap.Error(err))
		return fmt.Errorf("load cart %q: %w", s.key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		s.log.Error("cart record corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return err
	}
	s.entries = entries
	return nil
}

func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// AddItem merges into the line with the same product and variant or appends
// a new line with quantity 1. It opens the cart panel.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotLoaded
	}
	variant := NormalizeVariant(item.Variant)
	if i := indexOf(s.entries, item.ProductID, variant); i >= 0 {
		s.entries[i].Quantity++
	} else {
		s.entries = append(s.entries, Entry{
			ProductID: item.ProductID,
			Variant:   variant,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Image:     item.Image,
			Quantity:  1,
		})
	}
	s.open = true
	return s.saveLocked(ctx)
}

// RemoveItem deletes the exact (product, variant) line. Absent lines are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID uint, variant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotLoaded
	}
	s.removeLocked(productID, NormalizeVariant(variant))
	return s.saveLocked(ctx)
}

// UpdateQuantity sets a line's quantity; qty <= 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID uint, variant string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotLoaded
	}
	variant = NormalizeVariant(variant)
	if qty <= 0 {
		s.removeLocked(productID, variant)
	} else if i := indexOf(s.entries, productID, variant); i >= 0 {
		s.entries[i].Quantity = qty
	}
	return s.saveLocked(ctx)
}

// Clear empties the cart and deletes the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotLoaded
	}
	s.entries = []Entry{}
	if err := s.driver.Remove(ctx, s.key); err != nil {
		s.log.Error("cart clear failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("clear cart %q: %w", s.key, err)
	}
	return nil
}

// TakeAndClear snapshots and empties the cart in one step, so a concurrent
// AddItem lands either in the returned snapshot or in the emptied cart.
// An empty cart is returned as is and storage is not touched.
func (s *Store) TakeAndClear(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Snapshot{}, ErrNotLoaded
	}
	snap := s.snapshotLocked()
	if len(snap.Entries) == 0 {
		return snap, nil
	}
	s.entries = []Entry{}
	if err := s.driver.Remove(ctx, s.key); err != nil {
		s.log.Error("cart clear failed", zap.String("key", s.key), zap.Error(err))
		return snap, fmt.Errorf("clear cart %q: %w", s.key, err)
	}
	return snap, nil
}

// ToggleOpen flips the panel visibility and returns the new state.
func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Entries returns a copy in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return n
}

// Subtotal sums unit price times quantity, rounded to cents.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.entries)
}

// Snapshot is a consistent read of the whole cart.
type Snapshot struct {
	Entries    []Entry `json:"items"`
	TotalItems int     `json:"total_items"`
	Subtotal   float64 `json:"subtotal"`
	Open       bool    `json:"open"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return Snapshot{
		Entries:    append([]Entry{}, s.entries...),
		TotalItems: n,
		Subtotal:   subtotal(s.entries),
		Open:       s.open,
	}
}

func subtotal(entries []Entry) float64 {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.UnitPrice).Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}

func (s *Store) removeLocked(productID uint, variant string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.matches(productID, variant) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// saveLocked writes the full entry sequence. The in-memory state stays
// authoritative when the write fails.
func (s *Store) saveLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.driver.Set(ctx, s.key, raw); err != nil {
		s.log.Error("cart save failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("save cart %q: %w", s.key, err)
	}
	return nil
}
