package repository

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// Fixed catalog vocabulary used by the curated filters.
const (
	displayNameColumn = "nombres"
	categoryColumn    = "categoria"
	bestSellerColumn  = "plus"
	bestSellerMarker  = "BEST SELLER"
)

var (
	ringNameTerms             = []string{"anillo", "ring"}
	ringExcludedCategoryTerms = []string{"compromiso", "engagement"}
)

func (r *SQLRepository) selectAll(s *tableSchema) squirrel.SelectBuilder {
	columns := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		columns[i] = r.dialect.QuoteIdent(c)
	}
	return r.qb.Select(columns...).From(r.dialect.QuoteIdent(r.cfg.ProductsTable))
}

// searchQuery matches query as a substring of any column. A blank query
// selects every row.
func (r *SQLRepository) searchQuery(s *tableSchema, query string) squirrel.SelectBuilder {
	b := r.selectAll(s)

	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + q + "%"
		anyColumn := make(squirrel.Or, 0, len(s.Columns))
		for _, c := range s.Columns {
			anyColumn = append(anyColumn, squirrel.Like{r.dialect.TextExpr(c): pattern})
		}
		b = b.Where(anyColumn)
	}

	if col, ok := s.Lookup(displayNameColumn); ok {
		b = b.OrderBy(r.dialect.QuoteIdent(col) + " ASC")
	}
	return b
}

func (r *SQLRepository) byIDQuery(s *tableSchema, id string) squirrel.SelectBuilder {
	return r.selectAll(s).Where(squirrel.Eq{r.dialect.QuoteIdent(s.IDColumn): id})
}

// normalRingQuery selects rings that are not engagement rings. ok is false
// when the table lacks the name or category column, so nothing can match.
func (r *SQLRepository) normalRingQuery(s *tableSchema) (b squirrel.SelectBuilder, ok bool) {
	nameCol, ok := s.Lookup(displayNameColumn)
	if !ok {
		return b, false
	}
	catCol, ok := s.Lookup(categoryColumn)
	if !ok {
		return b, false
	}

	name := "LOWER(" + r.dialect.TextExpr(nameCol) + ")"
	category := "LOWER(" + r.dialect.TextExpr(catCol) + ")"

	nameMatches := make(squirrel.Or, 0, len(ringNameTerms))
	for _, term := range ringNameTerms {
		nameMatches = append(nameMatches, squirrel.Like{name: "%" + term + "%"})
	}
	categoryAllowed := make(squirrel.And, 0, len(ringExcludedCategoryTerms))
	for _, term := range ringExcludedCategoryTerms {
		categoryAllowed = append(categoryAllowed, squirrel.NotLike{category: "%" + term + "%"})
	}

	return r.selectAll(s).Where(nameMatches).Where(categoryAllowed), true
}

func (r *SQLRepository) bestSellersQuery(s *tableSchema) (b squirrel.SelectBuilder, ok bool) {
	flagCol, ok := s.Lookup(bestSellerColumn)
	if !ok {
		return b, false
	}
	return r.selectAll(s).Where(r.dialect.CaseInsensitiveEq(flagCol, bestSellerMarker)), true
}
