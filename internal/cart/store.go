package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/loopstackhq/loopstack-backend/pkg/logger"
)

// Store holds shopper carts behind the injected Storage. All mutations replace
// the whole session record, so concurrent writers stay structurally valid
// (last write wins).
type Store struct {
	storage Storage
	logg    *logger.Logger
}

// NewStore builds a cart store over the provided storage.
func NewStore(storage Storage, logg *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	return &Store{storage: storage, logg: logg}, nil
}

// load reads the session record. Missing records, storage failures, and
// malformed payloads all read as an empty cart; failures are logged only.
func (s *Store) load(ctx context.Context, sessionID string) []Entry {
	payload, ok, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		s.warn(ctx, sessionID, "reading cart record", err)
		return []Entry{}
	}
	if !ok || payload == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		s.warn(ctx, sessionID, "decoding cart record", err)
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}

func (s *Store) save(ctx context.Context, sessionID string, entries []Entry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		s.warn(ctx, sessionID, "encoding cart record", err)
		return
	}
	if err := s.storage.Set(ctx, sessionID, string(payload)); err != nil {
		s.warn(ctx, sessionID, "writing cart record", err)
	}
}

func (s *Store) warn(ctx context.Context, sessionID, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithCartSession(ctx, sessionID)
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}

// Items returns the session's entries in insertion order.
func (s *Store) Items(ctx context.Context, sessionID string) []Entry {
	return s.load(ctx, sessionID)
}

// Add puts a product in the cart. Adding a product already present increments
// its quantity instead of creating a second entry; a full cart rejects new
// products only.
func (s *Store) Add(ctx context.Context, sessionID, productID, storeID string, quantity int) Result {
	if quantity < 1 {
		return Result{Success: false, Message: "Quantity must be at least 1"}
	}

	entries := s.load(ctx, sessionID)
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity += quantity
			s.save(ctx, sessionID, entries)
			return Result{Success: true, Message: "Item quantity updated in cart"}
		}
	}

	if len(entries) >= MaxItems {
		return Result{Success: false, Message: fmt.Sprintf("Cart is full! Maximum %d items allowed.", MaxItems)}
	}

	entries = append(entries, Entry{ProductID: productID, StoreID: storeID, Quantity: quantity})
	s.save(ctx, sessionID, entries)
	return Result{Success: true, Message: "Item added to cart successfully"}
}

// UpdateQuantity sets the absolute quantity of an existing entry.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) Result {
	if quantity < 1 {
		return Result{Success: false, Message: "Quantity must be at least 1"}
	}

	entries := s.load(ctx, sessionID)
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity = quantity
			s.save(ctx, sessionID, entries)
			return Result{Success: true, Message: "Item quantity updated"}
		}
	}
	return Result{Success: false, Message: "Item not found in cart"}
}

// Remove drops a product from the cart, preserving the order of the rest.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) Result {
	entries := s.load(ctx, sessionID)
	filtered := entries[:0:0]
	for _, entry := range entries {
		if entry.ProductID != productID {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == len(entries) {
		return Result{Success: false, Message: "Item not found in cart"}
	}
	s.save(ctx, sessionID, filtered)
	return Result{Success: true, Message: "Item removed from cart"}
}

// Clear drops the whole session record.
func (s *Store) Clear(ctx context.Context, sessionID string) {
	if err := s.storage.Remove(ctx, sessionID); err != nil {
		s.warn(ctx, sessionID, "removing cart record", err)
	}
}

// Count sums the quantities across all entries.
func (s *Store) Count(ctx context.Context, sessionID string) int {
	total := 0
	for _, entry := range s.load(ctx, sessionID) {
		total += entry.Quantity
	}
	return total
}

// Contains reports whether the product has an entry in the cart.
func (s *Store) Contains(ctx context.Context, sessionID, productID string) bool {
	for _, entry := range s.load(ctx, sessionID) {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// QuantityOf returns the product's quantity, zero when absent.
func (s *Store) QuantityOf(ctx context.Context, sessionID, productID string) int {
	for _, entry := range s.load(ctx, sessionID) {
		if entry.ProductID == productID {
			return entry.Quantity
		}
	}
	return 0
}

// ProductIDs lists the product ids in cart order.
func (s *Store) ProductIDs(ctx context.Context, sessionID string) []string {
	entries := s.load(ctx, sessionID)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}
	return ids
}

// IsFull reports whether the cart reached its distinct-product cap.
func (s *Store) IsFull(ctx context.Context, sessionID string) bool {
	return len(s.load(ctx, sessionID)) >= MaxItems
}
