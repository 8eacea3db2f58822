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

type comparisonAddRequest struct {
	ProductID    string  `json:"product_id" validate:"required"`
	ProductPrice float64 `json:"product_price" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
	Description  string  `json:"description"`
}

type comparisonResponse struct {
	Items     map[string]state.ComparisonItem `json:"items"`
	ItemCount int                             `json:"item_count"`
	TotalCost string                          `json:"total_cost"`
}

// ComparisonFetch returns the session user's comparison list with aggregates.
func ComparisonFetch(engine *queries.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		responses.WriteSuccess(w, comparisonResponse{
			Items:     engine.ComparisonContents(username),
			ItemCount: engine.ComparisonItemCount(username),
			TotalCost: engine.ComparisonTotalCost(username),
		})
	}
}

func ComparisonAdd(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body comparisonAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		username := middleware.UsernameFromContext(r.Context())
		result, err := store.AddToComparison(r.Context(), username, state.AddToComparisonInput{
			ProductID:    body.ProductID,
			ProductPrice: body.ProductPrice,
			Quantity:     body.Quantity,
			ProductTitle: body.ProductTitle,
			ProductImage: body.ProductImage,
			Description:  body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in comparison"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func ComparisonUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		username := middleware.UsernameFromContext(r.Context())
		result, err := store.UpdateComparisonItem(r.Context(), username, chi.URLParam(r, "productId"), body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in comparison"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func ComparisonRemove(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		result, err := store.RemoveFromComparison(r.Context(), username, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "product not in comparison"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func ComparisonClear(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		result, err := store.ClearComparison(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "comparison is already empty"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}
