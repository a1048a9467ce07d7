package book

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"

	tableBooks = "books"
	colID      = "id"
)

var bookColumns = []any{"id", "title", "author", "genre", "year", "created_at", "updated_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type statement struct {
	sql  string
	args []any
}

// listStatements builds the COUNT query and the windowed SELECT for q.
// likeOp is the dialect's case-insensitive LIKE operator.
func listStatements(dialect, likeOp string, q Query) (count, page statement, err error) {
	ds := goqu.Dialect(dialect).From(tableBooks).Prepared(true)
	if q.Search != "" {
		ds = ds.Where(searchExpression(likeOp, q.Search))
	}

	count.sql, count.args, err = ds.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return statement{}, statement{}, err
	}

	pageDS := ds.Select(bookColumns...).Order(goqu.C(colID).Asc())
	if q.Limit > 0 {
		pageDS = pageDS.Limit(uint(q.Limit))
	}
	if q.Offset > 0 {
		pageDS = pageDS.Offset(uint(q.Offset))
	}
	page.sql, page.args, err = pageDS.ToSQL()
	if err != nil {
		return statement{}, statement{}, err
	}
	return count, page, nil
}

// searchExpression matches term as a literal substring of title, author,
// genre or the year rendered as text.
func searchExpression(likeOp, term string) exp.Expression {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	fields := []any{
		goqu.C("title"),
		goqu.C("author"),
		goqu.C("genre"),
		goqu.L("CAST(year AS TEXT)"),
	}

	ors := make([]exp.Expression, 0, len(fields))
	for _, f := range fields {
		ors = append(ors, goqu.L("? "+likeOp+` ? ESCAPE '\'`, f, pattern))
	}
	return goqu.Or(ors...)
}
