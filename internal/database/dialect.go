package database

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMySQL    = "mysql"
)

// Dialect holds what differs between engines when the product table is only
// known at runtime. All identifier quoting goes through QuoteIdent.
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat

	quote        string
	columnsQuery string
	castText     bool
	ciEquals     string
}

var (
	sqliteDialect = Dialect{
		Name:         DriverSQLite,
		Placeholder:  squirrel.Question,
		quote:        `"`,
		columnsQuery: `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
		ciEquals:     "%s = ? COLLATE NOCASE",
	}

	postgresDialect = Dialect{
		Name:        DriverPostgres,
		Placeholder: squirrel.Dollar,
		quote:       `"`,
		columnsQuery: `SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position`,
		castText: true,
		ciEquals: "%s ILIKE ?",
	}

	mysqlDialect = Dialect{
		Name:        DriverMySQL,
		Placeholder: squirrel.Question,
		quote:       "`",
		columnsQuery: `SELECT column_name FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ?
			ORDER BY ordinal_position`,
		// default MySQL collations are already case-insensitive
		ciEquals: "%s = ?",
	}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect, nil
	case DriverPostgres, DriverPgx:
		d := postgresDialect
		d.Name = driver
		return d, nil
	case DriverMySQL:
		return mysqlDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// QuoteIdent quotes a table or column name, doubling any embedded quote.
// Only names enumerated from the schema or fixed in code may pass through here.
func (d Dialect) QuoteIdent(name string) string {
	return d.quote + strings.ReplaceAll(name, d.quote, d.quote+d.quote) + d.quote
}

// ColumnsQuery lists a table's column names in declaration order. The table
// name is its only bound argument.
func (d Dialect) ColumnsQuery() string {
	return d.columnsQuery
}

// TextExpr renders a column as something LIKE and LOWER accept.
func (d Dialect) TextExpr(column string) string {
	if d.castText {
		return "CAST(" + d.QuoteIdent(column) + " AS TEXT)"
	}
	return d.QuoteIdent(column)
}

// CaseInsensitiveEq compares a column with one bound value ignoring case at
// the collation level.
func (d Dialect) CaseInsensitiveEq(column string, value string) squirrel.Sqlizer {
	expr := d.QuoteIdent(column)
	if d.castText {
		expr = d.TextExpr(column)
		value = escapeLike(value)
	}
	return squirrel.Expr(fmt.Sprintf(d.ciEquals, expr), value)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
