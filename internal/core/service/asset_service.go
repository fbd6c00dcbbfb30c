package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

type AssetService struct {
	store ports.AssetStore
}

func NewAssetService(store ports.AssetStore) *AssetService {
	return &AssetService{store: store}
}

// Open resolves a flat asset name. Names that could escape the namespace are
// reported as not found.
func (s *AssetService) Open(ctx context.Context, name string) (*domain.Asset, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, domain.ErrAssetNotFound
	}
	asset, err := s.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, domain.Internal("Error al leer el archivo", err)
	}
	return asset, nil
}
