package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type imageRow struct {
	ProductID   sql.NullString `db:"product_id"`
	Path        sql.NullString `db:"path"`
	Position    sql.NullInt64  `db:"position"`
	IsPrimary   sql.NullBool   `db:"is_primary"`
	OriginalURL sql.NullString `db:"original_url"`
}

func (ir imageRow) toModel() model.ProductImage {
	img := model.ProductImage{
		ProductID: ir.ProductID.String,
		Path:      ir.Path.String,
		Position:  int(ir.Position.Int64),
		IsPrimary: ir.IsPrimary.Valid && ir.IsPrimary.Bool,
	}
	if ir.OriginalURL.Valid {
		u := ir.OriginalURL.String
		img.OriginalURL = &u
	}
	return img
}

func (r *SQLRepository) imagesSelect() squirrel.SelectBuilder {
	return r.qb.
		Select(
			r.dialect.QuoteIdent("product_id"),
			r.dialect.QuoteIdent("path"),
			r.dialect.QuoteIdent("position"),
			r.dialect.QuoteIdent("is_primary"),
			r.dialect.QuoteIdent("original_url"),
		).
		From(r.dialect.QuoteIdent(r.cfg.ImagesTable))
}

// attachImages pairs every row with its images using a single query for the
// whole result set. Rows without images get an empty, non-nil slice.
func (r *SQLRepository) attachImages(ctx context.Context, q sqlx.QueryerContext, rows []*model.Row, idColumn string) ([]model.Product, error) {
	products := make([]model.Product, 0, len(rows))
	if len(rows) == 0 {
		return products, nil
	}

	ids := distinctIDs(rows, idColumn)
	byProduct := make(map[string][]model.ProductImage, len(ids))

	if len(ids) > 0 {
		query, args, err := r.imagesSelect().
			Where(squirrel.Eq{r.dialect.QuoteIdent("product_id"): ids}).
			OrderBy(r.dialect.QuoteIdent("product_id"), r.dialect.QuoteIdent("position")+" ASC").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build images query: %w", err)
		}

		var imgRows []imageRow
		if err := sqlx.SelectContext(ctx, q, &imgRows, query, args...); err != nil {
			return nil, fmt.Errorf("load images: %w", err)
		}
		for _, ir := range imgRows {
			img := ir.toModel()
			byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
		}
	}

	for _, row := range rows {
		images, ok := byProduct[strings.TrimSpace(rowID(row, idColumn))]
		if !ok {
			images = []model.ProductImage{}
		}
		products = append(products, newProduct(row, images, idColumn))
	}
	return products, nil
}

// imagesFor loads the images of one product ordered by position.
func (r *SQLRepository) imagesFor(ctx context.Context, q sqlx.QueryerContext, productID string) ([]model.ProductImage, error) {
	query, args, err := r.imagesSelect().
		Where(squirrel.Eq{r.dialect.QuoteIdent("product_id"): productID}).
		OrderBy(r.dialect.QuoteIdent("position") + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build images query: %w", err)
	}

	var imgRows []imageRow
	if err := sqlx.SelectContext(ctx, q, &imgRows, query, args...); err != nil {
		return nil, fmt.Errorf("load images for %s: %w", productID, err)
	}

	images := make([]model.ProductImage, 0, len(imgRows))
	for _, ir := range imgRows {
		images = append(images, ir.toModel())
	}
	return images, nil
}

// distinctIDs returns the trimmed, non-empty ids of rows in first-seen order.
func distinctIDs(rows []*model.Row, idColumn string) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(rowID(row, idColumn))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func rowID(row *model.Row, idColumn string) string {
	v, ok := row.Get(idColumn)
	if !ok || !v.Truthy() {
		return ""
	}
	return v.String()
}

func newProduct(row *model.Row, images []model.ProductImage, idColumn string) model.Product {
	return model.Product{
		ID:     rowID(row, idColumn),
		Data:   row,
		Images: images,
	}
}
