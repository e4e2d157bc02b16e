package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dkrasnov/go_storefront/internal/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Store is the single writer for one session's cart. Mutations apply to the
// in-memory cart under the lock and are written through to storage before
// the lock is released, so readers never observe a state that hasn't been
// handed to the durable copy.
type Store struct {
	mu      sync.RWMutex
	cart    domain.Cart
	storage Storage
	key     string
}

// New rehydrates the cart stored under key. A missing key or an
// undecodable value falls back to an empty cart; load problems are logged,
// never returned.
func New(ctx context.Context, storage Storage, key string) *Store {
	s := &Store{
		storage: storage,
		key:     key,
	}

	data, err := storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("cart load error, starting empty: %v", err)
		}
		return s
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		log.Printf("cart unmarshal error, starting empty: %v", err)
		return s
	}

	s.cart = cart
	return s
}

// Add inserts a new item or increments the quantity of an existing one.
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return s.Get(), ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == product.ID {
			s.cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}

	if !found {
		s.cart.Items = append(s.cart.Items, domain.CartItem{
			Product:  product,
			Quantity: quantity,
			AddedAt:  time.Now(),
		})
	}

	s.persist(ctx)
	return s.snapshot(), nil
}

// Remove deletes the item with the given product id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(ctx, productID)
	return s.snapshot()
}

// UpdateQuantity replaces an item's quantity. A quantity of zero or below
// removes the item. Absent ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return s.snapshot()
	}

	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == productID {
			s.cart.Items[i].Quantity = quantity
			s.persist(ctx)
			break
		}
	}

	return s.snapshot()
}

// Clear empties the cart and removes its storage entry entirely, so a fresh
// process starts from nothing rather than an empty record.
func (s *Store) Clear(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = nil
	s.cart.UpdatedAt = time.Now()
	if err := s.storage.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrKeyNotFound) {
		log.Printf("cart clear error: %v", err)
	}
	return s.snapshot()
}

// Get returns a copy of the current cart.
func (s *Store) Get() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) TotalItems() int {
	return s.Get().TotalItems()
}

func (s *Store) TotalPrice() float64 {
	return s.Get().TotalPrice()
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i, item := range s.cart.Items {
		if item.Product.ID == productID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// persist writes the full cart through to storage. Failures are logged and
// swallowed: the in-memory cart stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	s.cart.UpdatedAt = time.Now()

	data, err := json.Marshal(s.cart)
	if err != nil {
		log.Printf("cart marshal error: %v", err)
		return
	}

	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		log.Printf("cart persist error: %v", err)
	}
}

func (s *Store) snapshot() domain.Cart {
	items := make([]domain.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)

	return domain.Cart{
		Items:     items,
		UpdatedAt: s.cart.UpdatedAt,
	}
}
