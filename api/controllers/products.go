package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/internal/catalog"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

// ProductSource fetches catalog products for the proxy endpoint.
type ProductSource interface {
	Product(ctx context.Context, productID string) (*catalog.Product, error)
}

// ProductDetail proxies a single product lookup to the upstream catalog.
func ProductDetail(source ProductSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		product, err := source.Product(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
