package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/middleware"
	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/api/validators"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/state"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

type reviewCreateRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

type reviewUpdateRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

type reviewsResponse struct {
	Reviews       []state.Review `json:"reviews"`
	AverageRating float64        `json:"average_rating"`
}

func parseReviewID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "reviewId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review id")
	}
	return id, nil
}

// ReviewsList returns a product's reviews along with the average rating.
func ReviewsList(engine *queries.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		responses.WriteSuccess(w, reviewsResponse{
			Reviews:       engine.ReviewsForProduct(productID),
			AverageRating: engine.AverageRatingForProduct(productID),
		})
	}
}

func ReviewCreate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reviewCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, result, err := store.AddReview(r.Context(), state.AddReviewInput{
			ProductID: chi.URLParam(r, "productId"),
			Text:      body.Text,
			Rating:    body.Rating,
			Username:  middleware.UsernameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "review not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

func ReviewUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseReviewID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reviewUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.UpdateReview(r.Context(), chi.URLParam(r, "productId"), state.Review{
			ID:       id,
			Text:     body.Text,
			Rating:   body.Rating,
			Username: middleware.UsernameFromContext(r.Context()),
			Date:     time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "review not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}

func ReviewDelete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseReviewID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.DeleteReview(r.Context(), chi.URLParam(r, "productId"), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rerr := resultError(result, "review not found"); rerr != nil {
			responses.WriteError(r.Context(), logg, w, rerr)
			return
		}

		responses.WriteSuccess(w, mutationResponse{Result: result})
	}
}
