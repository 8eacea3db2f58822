package state

import (
	"context"
	"strings"

	"github.com/swiftcart/storefront-state/pkg/storage"
)

// AddToComparisonInput carries the product snapshot for the compare list.
type AddToComparisonInput struct {
	ProductID    string
	ProductPrice float64
	Quantity     int
	ProductTitle string
	ProductImage string
	Description  string
}

// AddToComparison mirrors AddToCart for the per-user comparison list.
func (s *Store) AddToComparison(ctx context.Context, username string, in AddToComparisonInput) (Result, error) {
	username = strings.TrimSpace(username)
	productID := strings.TrimSpace(in.ProductID)
	if username == "" || productID == "" || in.Quantity < 1 || in.ProductPrice < 0 {
		return s.record(EntityComparison, ResultInvalid), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userList, ok := s.comparison[username]
	if !ok {
		userList = map[string]ComparisonItem{}
		s.comparison[username] = userList
	}

	if existing, ok := userList[productID]; ok {
		existing.Quantity += in.Quantity
		userList[productID] = existing
	} else {
		userList[productID] = ComparisonItem{
			Quantity:     in.Quantity,
			ProductPrice: in.ProductPrice,
			ProductTitle: in.ProductTitle,
			ProductImage: in.ProductImage,
			Description:  in.Description,
		}
	}

	if err := s.persist(ctx, storage.KeyComparison, s.comparison, EntityComparison); err != nil {
		return ResultApplied, err
	}
	return s.record(EntityComparison, ResultApplied), nil
}

// UpdateComparisonItem sets the quantity; zero or below deletes the entry.
func (s *Store) UpdateComparisonItem(ctx context.Context, username, productID string, quantity int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userList, ok := s.comparison[username]
	if !ok {
		return s.record(EntityComparison, ResultNotFound), nil
	}
	item, ok := userList[productID]
	if !ok {
		return s.record(EntityComparison, ResultNotFound), nil
	}

	result := ResultApplied
	if quantity > 0 {
		item.Quantity = quantity
		userList[productID] = item
	} else {
		delete(userList, productID)
		result = ResultRemoved
	}

	if err := s.persist(ctx, storage.KeyComparison, s.comparison, EntityComparison); err != nil {
		return result, err
	}
	return s.record(EntityComparison, result), nil
}

// RemoveFromComparison deletes the entry if present.
func (s *Store) RemoveFromComparison(ctx context.Context, username, productID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userList, ok := s.comparison[username]
	if !ok {
		return s.record(EntityComparison, ResultNotFound), nil
	}
	if _, ok := userList[productID]; !ok {
		return s.record(EntityComparison, ResultNotFound), nil
	}
	delete(userList, productID)

	if err := s.persist(ctx, storage.KeyComparison, s.comparison, EntityComparison); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityComparison, ResultRemoved), nil
}

// ClearComparison drops the user's whole comparison mapping.
func (s *Store) ClearComparison(ctx context.Context, username string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comparison[username]; !ok {
		return s.record(EntityComparison, ResultNotFound), nil
	}
	delete(s.comparison, username)

	if err := s.persist(ctx, storage.KeyComparison, s.comparison, EntityComparison); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityComparison, ResultRemoved), nil
}

// ComparisonFor returns a copy of the user's comparison mapping.
func (s *Store) ComparisonFor(username string) map[string]ComparisonItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	userList, ok := s.comparison[username]
	if !ok {
		return map[string]ComparisonItem{}
	}
	out := make(map[string]ComparisonItem, len(userList))
	for id, item := range userList {
		out[id] = item
	}
	return out
}
