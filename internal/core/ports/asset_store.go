package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// AssetStore persists uploaded binaries in a single flat namespace.
type AssetStore interface {
	// Put stores the upload and returns the reference it can be opened by.
	Put(ctx context.Context, upload *domain.Upload) (string, error)
	// Open returns domain.ErrAssetNotFound when ref does not exist.
	Open(ctx context.Context, ref string) (*domain.Asset, error)
}

// LoginLimiter counts login attempts per client key inside a fixed window.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AssetService resolves client supplied file names to stored assets.
type AssetService interface {
	Open(ctx context.Context, name string) (*domain.Asset, error)
}
