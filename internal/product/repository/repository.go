package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type Config struct {
	ProductsTable string
	ImagesTable   string
	IDCandidates  []string
}

// SQLRepository serves products from any database/sql engine with a known
// Dialect. Each call holds one connection for its whole duration.
type SQLRepository struct {
	DB *sqlx.DB

	dialect database.Dialect
	qb      squirrel.StatementBuilderType
	cfg     Config
}

func NewSQLRepository(db *sqlx.DB, cfg Config) (*SQLRepository, error) {
	dialect, err := database.DialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &SQLRepository{
		DB:      db,
		dialect: dialect,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		cfg:     cfg,
	}, nil
}

func (r *SQLRepository) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := r.DB.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

func (r *SQLRepository) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	var products []model.Product
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		schema, err := r.describeTable(ctx, conn, r.cfg.ProductsTable)
		if err != nil {
			return err
		}
		if schema.Empty() {
			return nil
		}

		rows, err := queryRows(ctx, conn, r.searchQuery(schema, query))
		if err != nil {
			return fmt.Errorf("search products: %w", err)
		}
		products, err = r.attachImages(ctx, conn, rows, schema.IDColumn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return model.NewSearchResult(products), nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var found *model.Product
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		schema, err := r.describeTable(ctx, conn, r.cfg.ProductsTable)
		if err != nil {
			return err
		}
		if schema.Empty() {
			return nil
		}

		rows, err := queryRows(ctx, conn, r.byIDQuery(schema, id).Limit(1))
		if err != nil {
			return fmt.Errorf("find product %s: %w", id, err)
		}
		if len(rows) == 0 {
			return nil
		}

		images, err := r.imagesFor(ctx, conn, id)
		if err != nil {
			return err
		}
		p := newProduct(rows[0], images, schema.IDColumn)
		found = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *SQLRepository) NormalRing(ctx context.Context) ([]model.Product, error) {
	return r.filtered(ctx, "normal ring", r.normalRingQuery)
}

func (r *SQLRepository) BestSellers(ctx context.Context) ([]model.Product, error) {
	return r.filtered(ctx, "best sellers", r.bestSellersQuery)
}

func (r *SQLRepository) filtered(ctx context.Context, name string, build func(*tableSchema) (squirrel.SelectBuilder, bool)) ([]model.Product, error) {
	products := []model.Product{}
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		schema, err := r.describeTable(ctx, conn, r.cfg.ProductsTable)
		if err != nil {
			return err
		}
		if schema.Empty() {
			return nil
		}

		b, ok := build(schema)
		if !ok {
			return nil
		}
		rows, err := queryRows(ctx, conn, b)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		products, err = r.attachImages(ctx, conn, rows, schema.IDColumn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// queryRows runs a select and keeps every column of every row, in order.
func queryRows(ctx context.Context, q sqlx.QueryerContext, b squirrel.Sqlizer) ([]*model.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []*model.Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		row := model.NewRow(len(columns))
		for i, c := range columns {
			row.Set(c, model.ValueOf(values[i]))
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
