package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/normalize"
)

// UseCase answers catalog queries with client-ready records. baseURL is
// where image paths are resolved from.
type UseCase interface {
	SearchProducts(ctx context.Context, query, baseURL string) (*dto.CatalogPage, error)
	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, id, baseURL string) (*normalize.Record, error)
	NormalRing(ctx context.Context, baseURL string) (*dto.CatalogPage, error)
	BestSellers(ctx context.Context, baseURL string) (*dto.CatalogPage, error)
}
