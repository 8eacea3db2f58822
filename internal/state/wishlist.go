package state

import (
	"context"
	"strings"

	"github.com/swiftcart/storefront-state/pkg/storage"
)

// AddToWishlist appends the product snapshot, preserving insertion order. The
// wishlist is a single shared sequence, not partitioned by user.
func (s *Store) AddToWishlist(ctx context.Context, entry WishlistEntry) (Result, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return s.record(EntityWishlist, ResultInvalid), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = append(s.wishlist, entry)

	if err := s.persist(ctx, storage.KeyWishlist, s.wishlist, EntityWishlist); err != nil {
		return ResultApplied, err
	}
	return s.record(EntityWishlist, ResultApplied), nil
}

// RemoveFromWishlist drops every entry whose identifier matches. Unknown ids
// leave the wishlist untouched.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.wishlist[:0:0]
	for _, entry := range s.wishlist {
		if entry.ID != productID {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == len(s.wishlist) {
		return s.record(EntityWishlist, ResultNotFound), nil
	}
	if filtered == nil {
		filtered = Wishlist{}
	}
	s.wishlist = filtered

	if err := s.persist(ctx, storage.KeyWishlist, s.wishlist, EntityWishlist); err != nil {
		return ResultRemoved, err
	}
	return s.record(EntityWishlist, ResultRemoved), nil
}

// WishlistEntries returns a copy of the wishlist in insertion order.
func (s *Store) WishlistEntries() Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Wishlist, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}
