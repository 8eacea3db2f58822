package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/api/validators"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/state"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

type ratingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type ratingsResponse struct {
	Ratings       []int   `json:"ratings"`
	AverageRating float64 `json:"average_rating"`
}

func parseRatingIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rating index")
	}
	return idx, nil
}

// RatingsList returns a product's raw ratings and their average.
func RatingsList(engine *queries.Engine, store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		responses.WriteSuccess(w, ratingsResponse{
			Ratings:       store.RatingsFor(productID),
			AverageRating: engine.AverageRatingForProduct(productID),
		})
	}
}

func RatingCreate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ratingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.AddRating(r.Context(), chi.URLParam(r, "productId"), body.Rating)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "rating not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, mutationResponse{Result: result})
	}
}

func RatingUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := parseRatingIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ratingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.UpdateRating(r.Context(), chi.URLParam(r, "productId"), idx, body.Rating)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "rating not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func RatingDelete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := parseRatingIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.DeleteRating(r.Context(), chi.URLParam(r, "productId"), idx)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "rating not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}
