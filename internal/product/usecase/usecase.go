package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/normalize"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query, baseURL string) (*dto.CatalogPage, error) {
	n, err := normalize.New(baseURL)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	result, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	uc.logger.Debug("search products", zap.String("query", query), zap.Int("total", result.Total))
	return dto.NewCatalogPage(n.Products(result.Data)), nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id, baseURL string) (*normalize.Record, error) {
	n, err := normalize.New(baseURL)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if p == nil {
		uc.logger.Debug("product not found", zap.String("id", id))
		return nil, nil
	}
	return n.Product(p), nil
}

func (uc *productUseCase) NormalRing(ctx context.Context, baseURL string) (*dto.CatalogPage, error) {
	return uc.list(ctx, "normal ring", baseURL, uc.repo.NormalRing)
}

func (uc *productUseCase) BestSellers(ctx context.Context, baseURL string) (*dto.CatalogPage, error) {
	return uc.list(ctx, "best sellers", baseURL, uc.repo.BestSellers)
}

func (uc *productUseCase) list(ctx context.Context, name, baseURL string, fetch func(context.Context) ([]model.Product, error)) (*dto.CatalogPage, error) {
	n, err := normalize.New(baseURL)
	if err != nil {
		return nil, err
	}

	products, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	uc.logger.Debug(name, zap.Int("total", len(products)))
	return dto.NewCatalogPage(n.Products(products)), nil
}
