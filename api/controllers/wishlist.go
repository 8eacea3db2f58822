package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/api/validators"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

type wishlistAddRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Title       string  `json:"title"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type wishlistResponse struct {
	Items     state.Wishlist `json:"items"`
	ItemCount int            `json:"item_count"`
}

// WishlistFetch returns the shared wishlist. It is reachable without a session.
func WishlistFetch(store *state.Store, engine *queries.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, wishlistResponse{
			Items:     store.WishlistEntries(),
			ItemCount: engine.WishlistItemCount(),
		})
	}
}

func WishlistAdd(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body wishlistAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.AddToWishlist(r.Context(), state.WishlistEntry{
			ID:          body.ProductID,
			Title:       body.Title,
			Price:       body.Price,
			Image:       body.Image,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in wishlist"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func WishlistRemove(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := store.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in wishlist"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}
