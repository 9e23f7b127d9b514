package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository reads products and their images from storage whose product
// table shape is discovered at query time.
type Repository interface {
	Search(ctx context.Context, query string) (*model.SearchResult, error)
	// FindByID returns nil, nil when no row has the given id.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	NormalRing(ctx context.Context) ([]model.Product, error)
	BestSellers(ctx context.Context) ([]model.Product, error)
}
