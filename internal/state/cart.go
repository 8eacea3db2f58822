package state

import (
	"context"
	"strings"

	"github.com/swiftcart/storefront-state/pkg/storage"
)

// AddToCartInput carries the product snapshot applied to a cart line.
type AddToCartInput struct {
	ProductID    string
	ProductPrice float64
	Quantity     int
	ProductTitle string
	ProductImage string
}

// AddToCart creates the user's cart on first use, increments the quantity when
// the product is already present and inserts a new line otherwise.
func (s *Store) AddToCart(ctx context.Context, username string, in AddToCartInput) (Result, error) {
	username = strings.TrimSpace(username)
	productID := strings.TrimSpace(in.ProductID)
	if username == "" || productID == "" || in.Quantity < 1 || in.ProductPrice < 0 {
		return s.record(EntityCart, ResultInvalid), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userCart, ok := s.cart[username]
	if !ok {
		userCart = map[string]CartItem{}
		s.cart[username] = userCart
	}

	if existing, ok := userCart[productID]; ok {
		existing.Quantity += in.Quantity
		userCart[productID] = existing
	} else {
		userCart[productID] = CartItem{
			Quantity:     in.Quantity,
			ProductPrice: in.ProductPrice,
			ProductTitle: in.ProductTitle,
			ProductImage: in.ProductImage,
		}
	}

	if err := s.persist(ctx, storage.KeyCart, s.cart, EntityCart); err != nil {
		return ResultApplied, err
	}
	return s.record(EntityCart, ResultApplied), nil
}

// UpdateCartItem sets the quantity of an existing line; zero or below deletes
// it. Users without a cart and products not in it are left untouched.
func (s *Store) UpdateCartItem(ctx context.Context, username, productID string, quantity int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCart, ok := s.cart[username]
	if !ok {
		return s.record(EntityCart, ResultNotFound), nil
	}
	item, ok := userCart[productID]
	if !ok {
		return s.record(EntityCart, ResultNotFound), nil
	}

	result := ResultApplied
	if quantity > 0 {
		item.Quantity = quantity
		userCart[productID] = item
	} else {
		delete(userCart, productID)
		result = ResultRemoved
	}

	if err := s.persist(ctx, storage.KeyCart, s.cart, EntityCart); err != nil {
		return result, err
	}
	return s.record(EntityCart, result), nil
}

// RemoveFromCart deletes the line if present.
func (s *Store) RemoveFromCart(ctx context.Context, username, productID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCart, ok := s.cart[username]
	if !ok {
		return s.record(EntityCart, ResultNotFound), nil
	}
	if _, ok := userCart[productID]; !ok {
		return s.record(EntityCart, ResultNotFound), nil
	}
	delete(userCart, productID)

	if err := s.persist(ctx, storage.KeyCart, s.cart, EntityCart); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityCart, ResultRemoved), nil
}

// ClearCart drops the user's whole cart mapping.
func (s *Store) ClearCart(ctx context.Context, username string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart[username]; !ok {
		return s.record(EntityCart, ResultNotFound), nil
	}
	delete(s.cart, username)

	if err := s.persist(ctx, storage.KeyCart, s.cart, EntityCart); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityCart, ResultRemoved), nil
}

// CartFor returns a copy of the user's cart mapping. Query-engine read.
func (s *Store) CartFor(username string) map[string]CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCart, ok := s.cart[username]
	if !ok {
		return map[string]CartItem{}
	}
	out := make(map[string]CartItem, len(userCart))
	for id, item := range userCart {
		out[id] = item
	}
	return out
}
