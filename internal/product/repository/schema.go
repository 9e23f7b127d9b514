package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type tableSchema struct {
	Columns  []string
	IDColumn string
	byLower  map[string]string
}

func newTableSchema(columns, idCandidates []string) *tableSchema {
	s := &tableSchema{
		Columns: columns,
		byLower: make(map[string]string, len(columns)),
	}
	for _, c := range columns {
		s.byLower[strings.ToLower(c)] = c
	}
	s.IDColumn = detectIDColumn(columns, s.byLower, idCandidates)
	return s
}

// Empty reports a table without columns. Every query against it yields nothing.
func (s *tableSchema) Empty() bool {
	return len(s.Columns) == 0
}

// Lookup resolves a column name case-insensitively to its declared spelling.
func (s *tableSchema) Lookup(name string) (string, bool) {
	c, ok := s.byLower[strings.ToLower(name)]
	return c, ok
}

// DetectIDColumn picks the first candidate present in columns (ignoring case),
// else the first declared column. It returns "" for a table with no columns.
func DetectIDColumn(columns, candidates []string) string {
	byLower := make(map[string]string, len(columns))
	for _, c := range columns {
		byLower[strings.ToLower(c)] = c
	}
	return detectIDColumn(columns, byLower, candidates)
}

func detectIDColumn(columns []string, byLower map[string]string, candidates []string) string {
	if len(columns) == 0 {
		return ""
	}
	for _, candidate := range candidates {
		if c, ok := byLower[strings.ToLower(candidate)]; ok {
			return c
		}
	}
	return columns[0]
}

func (r *SQLRepository) describeTable(ctx context.Context, q sqlx.QueryerContext, table string) (*tableSchema, error) {
	var columns []string
	if err := sqlx.SelectContext(ctx, q, &columns, r.dialect.ColumnsQuery(), table); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return newTableSchema(columns, r.cfg.IDCandidates), nil
}
