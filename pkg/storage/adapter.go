package storage

import (
	"context"
	"encoding/json"
)

// Storage keys, one per persisted entity.
const (
	KeyCart         = "cart"
	KeyWishlist     = "wishlist"
	KeyComparison   = "comparison"
	KeyReviews      = "reviews"
	KeyRatings      = "ratings"
	KeyUsername     = "username"
	KeySessionToken = "jwt"
)

// Adapter is the synchronous persistence surface the state store writes
// through. Save overwrites the whole entity stored under key. Load
// deserializes into dest and reports found=false when the key is absent or
// the stored payload is not parseable; the caller keeps its default in that
// case. Errors are reserved for backend failures.
type Adapter interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (bool, error)
	Remove(ctx context.Context, key string) error
}

func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// decode reports whether raw parsed into dest. A malformed payload is treated
// as absent, never as an error.
func decode(raw []byte, dest any) bool {
	return json.Unmarshal(raw, dest) == nil
}
