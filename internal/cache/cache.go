package cache

import (
	"context"
	"errors"

	"github.com/ppiankov/veritas/internal/model"
)

// Defaults for fuzzy lookup
const (
	DefaultWindow    = 20
	DefaultThreshold = 0.85

	// MaxClaimRunes bounds the stored claim text
	MaxClaimRunes = 500
)

// ErrNotCacheable is returned by Store for results that must not be reused
var ErrNotCacheable = errors.New("result is not cacheable")

// Store persists verified claims. Append never deduplicates.
type Store interface {
	Append(ctx context.Context, claim model.CachedClaim) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.CachedClaim, error)
}
