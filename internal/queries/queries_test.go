package queries

import (
	"context"
	"testing"

	"github.com/swiftcart/storefront-state/internal/session"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/storage"
)

func newTestEngine(t *testing.T) (*Engine, *state.Store) {
	t.Helper()
	ctx := context.Background()
	mem := storage.NewMemory()
	gate, err := session.NewGate(ctx, mem, nil)
	if err != nil {
		t.Fatalf("NewGate failed: %v", err)
	}
	store, err := state.NewStore(ctx, state.StoreParams{Adapter: mem, Gate: gate})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	engine, err := New(store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return engine, store
}

func login(t *testing.T, store *state.Store, username string) {
	t.Helper()
	if err := store.Login(context.Background(), username, "token-"+username); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func seedCart(t *testing.T, store *state.Store, username, productID string, price float64, qty int) {
	t.Helper()
	res, err := store.AddToCart(context.Background(), username, state.AddToCartInput{
		ProductID:    productID,
		ProductPrice: price,
		Quantity:     qty,
		ProductTitle: "title-" + productID,
	})
	if err != nil || res != state.ResultApplied {
		t.Fatalf("seed cart %s/%s: res=%v err=%v", username, productID, res, err)
	}
}

func TestCartAggregatesWhileLoggedIn(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	login(t, store, "mary")
	seedCart(t, store, "mary", "p1", 10.50, 2)
	seedCart(t, store, "mary", "p2", 4.25, 1)

	if got := engine.CartItemCount("mary"); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	if got := engine.CartTotalCost("mary"); got != "25.25" {
		t.Fatalf("expected total 25.25, got %s", got)
	}
	contents := engine.CartContents("mary")
	if len(contents) != 2 || contents["p1"].Quantity != 2 {
		t.Fatalf("unexpected contents %+v", contents)
	}
}

func TestCartAggregatesGatedWhenLoggedOut(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	login(t, store, "mary")
	seedCart(t, store, "mary", "p1", 10, 2)
	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if got := engine.CartItemCount("mary"); got != 0 {
		t.Fatalf("expected gated count 0, got %d", got)
	}
	if got := engine.CartTotalCost("mary"); got != ZeroCost {
		t.Fatalf("expected gated total %s, got %s", ZeroCost, got)
	}
	if got := engine.CartContents("mary"); len(got) != 0 {
		t.Fatalf("expected gated empty contents, got %+v", got)
	}

	// The underlying cart line survives the gate.
	if store.CartFor("mary")["p1"].Quantity != 2 {
		t.Fatal("logout must not mutate cart state")
	}
}

func TestComparisonAggregates(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	login(t, store, "mary")
	if res, err := store.AddToComparison(context.Background(), "mary", state.AddToComparisonInput{
		ProductID: "p1", ProductPrice: 19.99, Quantity: 2, ProductTitle: "Lamp",
	}); err != nil || res != state.ResultApplied {
		t.Fatalf("seed comparison: res=%v err=%v", res, err)
	}

	if got := engine.ComparisonItemCount("mary"); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
	if got := engine.ComparisonTotalCost("mary"); got != "39.98" {
		t.Fatalf("expected 39.98, got %s", got)
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if got := engine.ComparisonTotalCost("mary"); got != ZeroCost {
		t.Fatalf("expected gated total, got %s", got)
	}
	if got := engine.ComparisonContents("mary"); len(got) != 0 {
		t.Fatalf("expected gated contents, got %+v", got)
	}
}

func TestWishlistCountIgnoresSession(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	for _, id := range []string{"p1", "p2"} {
		if res, err := store.AddToWishlist(context.Background(), state.WishlistEntry{ID: id}); err != nil || res != state.ResultApplied {
			t.Fatalf("seed wishlist %s: res=%v err=%v", id, res, err)
		}
	}

	if got := engine.WishlistItemCount(); got != 2 {
		t.Fatalf("expected 2 while logged out, got %d", got)
	}
	login(t, store, "mary")
	if got := engine.WishlistItemCount(); got != 2 {
		t.Fatalf("expected 2 while logged in, got %d", got)
	}
}

func TestAverageRatingRoundsToOneDecimal(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	for _, r := range []int{3, 4, 5} {
		if res, err := store.AddRating(context.Background(), "p1", r); err != nil || res != state.ResultApplied {
			t.Fatalf("seed rating %d: res=%v err=%v", r, res, err)
		}
	}
	if got := engine.AverageRatingForProduct("p1"); got != 4.0 {
		t.Fatalf("expected 4.0, got %v", got)
	}

	if res, err := store.AddRating(context.Background(), "p2", 4); err != nil || res != state.ResultApplied {
		t.Fatalf("seed p2: res=%v err=%v", res, err)
	}
	if res, err := store.AddRating(context.Background(), "p2", 5); err != nil || res != state.ResultApplied {
		t.Fatalf("seed p2: res=%v err=%v", res, err)
	}
	if got := engine.AverageRatingForProduct("p2"); got != 4.5 {
		t.Fatalf("expected 4.5, got %v", got)
	}
}

func TestAverageRatingEmptyIsZero(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	if got := engine.AverageRatingForProduct("missing"); got != 0 {
		t.Fatalf("expected 0 for unrated product, got %v", got)
	}
}

func TestReviewsForProductCopies(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	if _, res, err := store.AddReview(context.Background(), state.AddReviewInput{
		ProductID: "p1", Text: "solid", Rating: 4, Username: "mary",
	}); err != nil || res != state.ResultApplied {
		t.Fatalf("seed review: res=%v err=%v", res, err)
	}

	got := engine.ReviewsForProduct("p1")
	if len(got) != 1 || got[0].Text != "solid" {
		t.Fatalf("unexpected reviews %+v", got)
	}
	got[0].Text = "mutated"
	if store.ReviewsFor("p1")[0].Text != "solid" {
		t.Fatal("query result must be a copy")
	}
}
