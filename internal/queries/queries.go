// Package queries computes derived aggregates over current state. Everything
// here is a pure read: nothing mutates and nothing persists.
package queries

import (
	"github.com/shopspring/decimal"
	"github.com/swiftcart/storefront-state/internal/state"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
)

// ZeroCost is the gated/empty rendering of a money total.
const ZeroCost = "0.00"

// Engine answers aggregate queries. Cart and comparison aggregates consult
// the session gate first: while logged out they report empty regardless of
// what storage holds for the user.
type Engine struct {
	store *state.Store
}

func New(store *state.Store) (*Engine, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	return &Engine{store: store}, nil
}

// CartItemCount sums quantities across the user's cart lines.
func (e *Engine) CartItemCount(username string) int {
	if !e.store.Gate().IsLoggedIn() {
		return 0
	}
	count := 0
	for _, item := range e.store.CartFor(username) {
		count += item.Quantity
	}
	return count
}

// CartTotalCost sums quantity x price across the cart, formatted to two
// decimal places.
func (e *Engine) CartTotalCost(username string) string {
	if !e.store.Gate().IsLoggedIn() {
		return ZeroCost
	}
	total := decimal.Zero
	for _, item := range e.store.CartFor(username) {
		line := decimal.NewFromFloat(item.ProductPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.StringFixed(2)
}

// CartContents returns the user's cart mapping, empty while logged out.
func (e *Engine) CartContents(username string) map[string]state.CartItem {
	if !e.store.Gate().IsLoggedIn() {
		return map[string]state.CartItem{}
	}
	return e.store.CartFor(username)
}

// ComparisonItemCount sums quantities across the user's comparison entries.
func (e *Engine) ComparisonItemCount(username string) int {
	if !e.store.Gate().IsLoggedIn() {
		return 0
	}
	count := 0
	for _, item := range e.store.ComparisonFor(username) {
		count += item.Quantity
	}
	return count
}

// ComparisonTotalCost sums quantity x price across the comparison list.
func (e *Engine) ComparisonTotalCost(username string) string {
	if !e.store.Gate().IsLoggedIn() {
		return ZeroCost
	}
	total := decimal.Zero
	for _, item := range e.store.ComparisonFor(username) {
		line := decimal.NewFromFloat(item.ProductPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.StringFixed(2)
}

// ComparisonContents returns the user's comparison mapping, empty while
// logged out.
func (e *Engine) ComparisonContents(username string) map[string]state.ComparisonItem {
	if !e.store.Gate().IsLoggedIn() {
		return map[string]state.ComparisonItem{}
	}
	return e.store.ComparisonFor(username)
}

// WishlistItemCount reports the shared wishlist length. Ungated: the wishlist
// is global and visible while logged out.
func (e *Engine) WishlistItemCount() int {
	return len(e.store.WishlistEntries())
}

// ReviewsForProduct returns the product's reviews in insertion order.
func (e *Engine) ReviewsForProduct(productID string) []state.Review {
	return e.store.ReviewsFor(productID)
}

// AverageRatingForProduct returns the arithmetic mean rounded to one decimal
// place, zero when the product has no ratings.
func (e *Engine) AverageRatingForProduct(productID string) float64 {
	ratings := e.store.RatingsFor(productID)
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
	out, _ := avg.Float64()
	return out
}
