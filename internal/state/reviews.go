package state

import (
	"context"
	"strings"
	"time"

	"github.com/swiftcart/storefront-state/pkg/storage"
)

// AddReviewInput carries a new review; ID and Date are minted here.
type AddReviewInput struct {
	ProductID string
	Text      string
	Rating    int
	Username  string
}

// AddReview appends the review to the product's sequence, creating it on
// first use, then kicks off a best-effort background refresh from the remote
// review source when one is configured.
func (s *Store) AddReview(ctx context.Context, in AddReviewInput) (Review, Result, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" || strings.TrimSpace(in.Username) == "" || in.Rating < 1 || in.Rating > 5 {
		return Review{}, s.record(EntityReviews, ResultInvalid), nil
	}

	now := time.Now().UTC()
	review := Review{
		ID:        now.UnixMilli(),
		ProductID: productID,
		Text:      in.Text,
		Rating:    in.Rating,
		Username:  in.Username,
		Date:      now.Format(time.RFC3339),
	}

	s.mu.Lock()
	// Unix-milli ids collide when two reviews land in the same millisecond;
	// bump until unique under this product.
	for containsReviewID(s.reviewsOf[productID], review.ID) {
		review.ID++
	}
	s.reviewsOf[productID] = append(s.reviewsOf[productID], review)
	err := s.persist(ctx, storage.KeyReviews, s.reviewsOf, EntityReviews)
	s.mu.Unlock()

	if err != nil {
		return review, ResultApplied, err
	}
	s.scheduleReviewRefresh(ctx, productID)
	return review, s.record(EntityReviews, ResultApplied), nil
}

// UpdateReview replaces the review matching the given id under the product.
func (s *Store) UpdateReview(ctx context.Context, productID string, review Review) (Result, error) {
	s.mu.Lock()

	seq, ok := s.reviewsOf[productID]
	if !ok {
		s.mu.Unlock()
		return s.record(EntityReviews, ResultNotFound), nil
	}
	idx := indexOfReview(seq, review.ID)
	if idx < 0 {
		s.mu.Unlock()
		return s.record(EntityReviews, ResultNotFound), nil
	}
	review.ProductID = productID
	seq[idx] = review

	err := s.persist(ctx, storage.KeyReviews, s.reviewsOf, EntityReviews)
	s.mu.Unlock()

	if err != nil {
		return ResultApplied, err
	}
	s.scheduleReviewRefresh(ctx, productID)
	return s.record(EntityReviews, ResultApplied), nil
}

// DeleteReview removes the review with the given timestamp id.
func (s *Store) DeleteReview(ctx context.Context, productID string, id int64) (Result, error) {
	s.mu.Lock()

	seq, ok := s.reviewsOf[productID]
	if !ok {
		s.mu.Unlock()
		return s.record(EntityReviews, ResultNotFound), nil
	}
	idx := indexOfReview(seq, id)
	if idx < 0 {
		s.mu.Unlock()
		return s.record(EntityReviews, ResultNotFound), nil
	}
	s.reviewsOf[productID] = append(seq[:idx], seq[idx+1:]...)

	err := s.persist(ctx, storage.KeyReviews, s.reviewsOf, EntityReviews)
	s.mu.Unlock()

	if err != nil {
		return ResultRemoved, err
	}
	s.scheduleReviewRefresh(ctx, productID)
	return s.record(EntityReviews, ResultRemoved), nil
}

// ReviewsFor returns the product's reviews in insertion order; empty when the
// product has none.
func (s *Store) ReviewsFor(productID string) []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.reviewsOf[productID]
	out := make([]Review, len(seq))
	copy(out, seq)
	return out
}

// scheduleReviewRefresh merges remote reviews in the background. The local
// mutation is already applied and persisted; a failed fetch only logs.
func (s *Store) scheduleReviewRefresh(ctx context.Context, productID string) {
	if s.reviews == nil {
		return
	}
	refreshCtx := context.WithoutCancel(ctx)
	s.reconciling.Add(1)
	go func() {
		defer s.reconciling.Done()
		s.refreshReviews(refreshCtx, productID)
	}()
}

func (s *Store) refreshReviews(ctx context.Context, productID string) {
	remote, err := s.reviews.ProductReviews(ctx, productID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithEntity(ctx, EntityReviews), "reviews.refresh_failed")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.reviewsOf[productID]
	added := false
	for _, r := range remote {
		if r.ID == 0 || containsReviewID(seq, r.ID) {
			continue
		}
		r.ProductID = productID
		seq = append(seq, r)
		added = true
	}
	if !added {
		return
	}
	s.reviewsOf[productID] = seq
	if err := s.persist(ctx, storage.KeyReviews, s.reviewsOf, EntityReviews); err == nil {
		s.metrics.IncApplied(EntityReviews)
	}
}

// WaitForReconciliation blocks until in-flight background refreshes finish.
// Intended for tests and graceful shutdown.
func (s *Store) WaitForReconciliation() {
	s.reconciling.Wait()
}

func indexOfReview(seq []Review, id int64) int {
	for i, r := range seq {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func containsReviewID(seq []Review, id int64) bool {
	return indexOfReview(seq, id) >= 0
}
