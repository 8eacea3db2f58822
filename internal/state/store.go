package state

import (
	"context"
	"sync"

	"github.com/swiftcart/storefront-state/internal/session"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
	"github.com/swiftcart/storefront-state/pkg/metrics"
	"github.com/swiftcart/storefront-state/pkg/storage"
)

// ReviewSource supplies remote reviews for best-effort reconciliation after a
// local review mutation. Fetch failures never block or roll back the mutation.
type ReviewSource interface {
	ProductReviews(ctx context.Context, productID string) ([]Review, error)
}

// StoreParams groups dependencies for the state store.
type StoreParams struct {
	Adapter      storage.Adapter
	Gate         *session.Gate
	Logger       *logger.Logger
	Metrics      *metrics.MutationMetrics
	ReviewSource ReviewSource
}

// Store is the single source of truth for the five persisted entities. All
// mutations run under one lock and re-serialize the owning entity through the
// adapter before returning, so memory and storage never diverge after a
// completed call.
type Store struct {
	mu      sync.Mutex
	adapter storage.Adapter
	gate    *session.Gate
	logg    *logger.Logger
	metrics *metrics.MutationMetrics
	reviews ReviewSource

	cart       Cart
	comparison Comparison
	wishlist   Wishlist
	reviewsOf  Reviews
	ratingsOf  Ratings

	// reconciling tracks in-flight background review refreshes for tests.
	reconciling sync.WaitGroup
}

// NewStore loads every entity from the adapter, substituting an empty default
// when a key is absent or its payload does not parse.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Adapter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	if params.Gate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session gate is required")
	}

	s := &Store{
		adapter:    params.Adapter,
		gate:       params.Gate,
		logg:       params.Logger,
		metrics:    params.Metrics,
		reviews:    params.ReviewSource,
		cart:       Cart{},
		comparison: Comparison{},
		wishlist:   Wishlist{},
		reviewsOf:  Reviews{},
		ratingsOf:  Ratings{},
	}

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	loads := []struct {
		key    string
		entity string
		dest   any
	}{
		{storage.KeyCart, EntityCart, &s.cart},
		{storage.KeyComparison, EntityComparison, &s.comparison},
		{storage.KeyWishlist, EntityWishlist, &s.wishlist},
		{storage.KeyReviews, EntityReviews, &s.reviewsOf},
		{storage.KeyRatings, EntityRatings, &s.ratingsOf},
	}
	for _, l := range loads {
		found, err := s.adapter.Load(ctx, l.key, l.dest)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore "+l.entity)
		}
		if !found && s.logg != nil {
			s.logg.Info(s.logg.WithEntity(ctx, l.entity), "state.default_substituted")
		}
	}
	// Load leaves nil maps in place when a stored payload was JSON null.
	if s.cart == nil {
		s.cart = Cart{}
	}
	if s.comparison == nil {
		s.comparison = Comparison{}
	}
	if s.wishlist == nil {
		s.wishlist = Wishlist{}
	}
	if s.reviewsOf == nil {
		s.reviewsOf = Reviews{}
	}
	if s.ratingsOf == nil {
		s.ratingsOf = Ratings{}
	}
	return nil
}

// Gate exposes the session gate consulted by the query engine.
func (s *Store) Gate() *session.Gate {
	return s.gate
}

// Login records a successful upstream authentication.
func (s *Store) Login(ctx context.Context, username, token string) error {
	return s.gate.Login(ctx, username, token)
}

// Logout clears the active session.
func (s *Store) Logout(ctx context.Context) error {
	return s.gate.Logout(ctx)
}

// persist writes the whole entity through the adapter. The in-memory change
// stays applied on failure; the next successful write of the same entity
// re-syncs storage because writes are whole-entity.
func (s *Store) persist(ctx context.Context, key string, value any, entity string) error {
	if err := s.adapter.Save(ctx, key, value); err != nil {
		s.metrics.IncFailed(entity)
		if s.logg != nil {
			s.logg.Error(s.logg.WithEntity(ctx, entity), "state.persist_failed", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist "+entity)
	}
	return nil
}

func (s *Store) record(entity string, result Result) Result {
	switch result {
	case ResultApplied, ResultRemoved:
		s.metrics.IncApplied(entity)
	case ResultNotFound:
		s.metrics.IncNoop(entity, noopReasonNotFound)
	case ResultInvalid:
		s.metrics.IncNoop(entity, noopReasonInvalid)
	}
	return result
}
