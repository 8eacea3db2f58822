package state

import (
	"context"
	"strings"

	"github.com/swiftcart/storefront-state/pkg/storage"
)

// AddRating appends a bare 1..5 score to the product's sequence.
func (s *Store) AddRating(ctx context.Context, productID string, rating int) (Result, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" || rating < 1 || rating > 5 {
		return s.record(EntityRatings, ResultInvalid), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratingsOf[productID] = append(s.ratingsOf[productID], rating)

	if err := s.persist(ctx, storage.KeyRatings, s.ratingsOf, EntityRatings); err != nil {
		return ResultApplied, err
	}
	return s.record(EntityRatings, ResultApplied), nil
}

// UpdateRating replaces the score at the given position. Out-of-range indexes
// leave the sequence untouched.
func (s *Store) UpdateRating(ctx context.Context, productID string, index, rating int) (Result, error) {
	if rating < 1 || rating > 5 {
		return s.record(EntityRatings, ResultInvalid), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.ratingsOf[productID]
	if !ok || index < 0 || index >= len(seq) {
		return s.record(EntityRatings, ResultNotFound), nil
	}
	seq[index] = rating

	if err := s.persist(ctx, storage.KeyRatings, s.ratingsOf, EntityRatings); err != nil {
		return ResultApplied, err
	}
	return s.record(EntityRatings, ResultApplied), nil
}

// DeleteRating removes the score at the given position.
func (s *Store) DeleteRating(ctx context.Context, productID string, index int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.ratingsOf[productID]
	if !ok || index < 0 || index >= len(seq) {
		return s.record(EntityRatings, ResultNotFound), nil
	}
	s.ratingsOf[productID] = append(seq[:index], seq[index+1:]...)

	if err := s.persist(ctx, storage.KeyRatings, s.ratingsOf, EntityRatings); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityRatings, ResultRemoved), nil
}

// RatingsFor returns the product's scores in insertion order.
func (s *Store) RatingsFor(productID string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.ratingsOf[productID]
	out := make([]int, len(seq))
	copy(out, seq)
	return out
}
