package controllers

import (
	"github.com/swiftcart/storefront-state/internal/state"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
)

type mutationResponse struct {
	Result state.Result `json:"result"`
}

// resultError maps a no-op mutation result to the error the client sees.
// Applied and removed results map to nil.
func resultError(result state.Result, notFoundMsg string) error {
	switch result {
	case state.ResultNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	case state.ResultInvalid:
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid input")
	}
	return nil
}
