// Package cart owns the customer's provisional service selection and the
// booking-scratch slot. It is the single writer of both durable keys.
package cart

import (
	"sync"

	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/storage"
)

// Store is the persistent cart. Every mutation writes the affected snapshot
// back to durable storage; persistence failures are logged, never returned —
// cart operations cannot fail in the business sense.
type Store struct {
	mu      sync.Mutex
	items   []model.CartItem
	scratch *model.BookingScratch

	storage *storage.Store
	log     *logger.Logger
}

// NewStore hydrates the cart and booking-scratch slots from storage.
// Corrupt or missing snapshots hydrate to empty.
func NewStore(store *storage.Store, log *logger.Logger) *Store {
	s := &Store{storage: store, log: log}

	var items []model.CartItem
	if ok, err := store.Load(storage.CartKey, &items); err != nil {
		log.Warn("Failed to hydrate cart snapshot", "error", err)
	} else if ok {
		s.items = items
	}

	var scratch model.BookingScratch
	if ok, err := store.Load(storage.BookingDataKey, &scratch); err != nil {
		log.Warn("Failed to hydrate booking-scratch snapshot", "error", err)
	} else if ok {
		s.scratch = &scratch
	}

	return s
}

// AddToCart upserts a service: an existing line has its quantity
// incremented, a new one is inserted with a price snapshot. Quantities
// below 1 are treated as 1.
func (s *Store) AddToCart(svc model.Service, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == svc.ID {
			s.items[i].Quantity += quantity
			s.persistCart()
			return
		}
	}
	s.items = append(s.items, model.NewCartItem(svc, quantity))
	s.persistCart()
}

// ToggleCart is the catalog-grid affordance: a service already in the cart
// is removed ENTIRELY (not decremented, regardless of quantity), otherwise
// it is inserted with quantity 1. Use AddToCart for the explicit
// add-with-quantity action.
func (s *Store) ToggleCart(svc model.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == svc.ID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistCart()
			return
		}
	}
	s.items = append(s.items, model.NewCartItem(svc, 1))
	s.persistCart()
}

func (s *Store) RemoveFromCart(serviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(serviceID)
	s.persistCart()
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line.
func (s *Store) UpdateQuantity(serviceID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(serviceID)
		s.persistCart()
		return
	}
	for i := range s.items {
		if s.items[i].ID == serviceID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persistCart()
}

// ClearCart empties the items only; booking-scratch data survives.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistCart()
}

// Items returns a copy of the current cart lines.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s *Store) IsInCart(serviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == serviceID {
			return true
		}
	}
	return false
}

func (s *Store) ItemQuantity(serviceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == serviceID {
			return item.Quantity
		}
	}
	return 0
}

// UpdateBookingData replaces the booking-scratch slot. Only non-nil data is
// written to storage; clearing goes through ClearBookingData so a scratch
// snapshot can outlive a cart that gets cleared.
func (s *Store) UpdateBookingData(data *model.BookingScratch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratch = data
	if data != nil {
		if err := s.storage.Save(storage.BookingDataKey, data); err != nil {
			s.log.Warn("Failed to persist booking-scratch snapshot", "error", err)
		}
	}
}

func (s *Store) BookingData() *model.BookingScratch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scratch
}

func (s *Store) ClearBookingData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratch = nil
	if err := s.storage.Delete(storage.BookingDataKey); err != nil {
		s.log.Warn("Failed to delete booking-scratch snapshot", "error", err)
	}
}

// ClearAll purges both the cart and the booking-scratch slot.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.scratch = nil
	if err := s.storage.Delete(storage.CartKey); err != nil {
		s.log.Warn("Failed to delete cart snapshot", "error", err)
	}
	if err := s.storage.Delete(storage.BookingDataKey); err != nil {
		s.log.Warn("Failed to delete booking-scratch snapshot", "error", err)
	}
}

func (s *Store) removeLocked(serviceID string) {
	for i := range s.items {
		if s.items[i].ID == serviceID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// persistCart writes the cart snapshot, best-effort. Callers must hold s.mu.
func (s *Store) persistCart() {
	if err := s.storage.Save(storage.CartKey, s.items); err != nil {
		s.log.Warn("Failed to persist cart snapshot", "error", err)
	}
}
