package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/middleware"
	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/api/validators"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

type cartAddRequest struct {
	ProductID    string  `json:"product_id" validate:"required"`
	ProductPrice float64 `json:"product_price" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items     map[string]state.CartItem `json:"items"`
	ItemCount int                       `json:"item_count"`
	TotalCost string                    `json:"total_cost"`
}

// CartFetch returns the session user's cart with its derived aggregates.
func CartFetch(engine *queries.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		responses.WriteSuccess(w, cartResponse{
			Items:     engine.CartContents(username),
			ItemCount: engine.CartItemCount(username),
			TotalCost: engine.CartTotalCost(username),
		})
	}
}

func CartAdd(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		username := middleware.UsernameFromContext(r.Context())
		result, err := store.AddToCart(r.Context(), username, state.AddToCartInput{
			ProductID:    body.ProductID,
			ProductPrice: body.ProductPrice,
			Quantity:     body.Quantity,
			ProductTitle: body.ProductTitle,
			ProductImage: body.ProductImage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in cart"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func CartUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		username := middleware.UsernameFromContext(r.Context())
		result, err := store.UpdateCartItem(r.Context(), username, chi.URLParam(r, "productId"), body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in cart"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func CartRemove(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		result, err := store.RemoveFromCart(r.Context(), username, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in cart"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func CartClear(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		result, err := store.ClearCart(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "cart is already empty"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}
