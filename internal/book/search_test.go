package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStatements_NoSearch(t *testing.T) {
	count, page, err := listStatements(dialectPostgres, "ILIKE", Query{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, `SELECT COUNT(*) FROM "books"`, count.sql)
	assert.Empty(t, count.args)
	assert.NotContains(t, page.sql, "WHERE")
	assert.Contains(t, page.sql, `ORDER BY "id" ASC`)
	assert.Contains(t, page.sql, "LIMIT $1")
	assert.NotContains(t, page.sql, "OFFSET")
}

func TestListStatements_Search(t *testing.T) {
	count, page, err := listStatements(dialectPostgres, "ILIKE", Query{Search: "50%_off", Limit: 10, Offset: 20})
	require.NoError(t, err)

	const pattern = `%50\%\_off%`
	assert.Contains(t, count.sql, `"title" ILIKE $1 ESCAPE '\'`)
	assert.Contains(t, count.sql, `"author" ILIKE $2 ESCAPE '\'`)
	assert.Contains(t, count.sql, `"genre" ILIKE $3 ESCAPE '\'`)
	assert.Contains(t, count.sql, `CAST(year AS TEXT) ILIKE $4 ESCAPE '\'`)
	assert.Equal(t, []any{pattern, pattern, pattern, pattern}, count.args)

	assert.Contains(t, page.sql, "LIMIT $5 OFFSET $6")
	require.Len(t, page.args, 6)
	assert.EqualValues(t, 10, page.args[4])
	assert.EqualValues(t, 20, page.args[5])
}

func TestListStatements_SQLite(t *testing.T) {
	count, page, err := listStatements(dialectSQLite, "LIKE", Query{Search: "dune", Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, count.sql, "COUNT(*)")
	assert.Contains(t, count.sql, `LIKE ? ESCAPE '\'`)
	assert.NotContains(t, count.sql, "$1")
	assert.Len(t, count.args, 4)
	assert.Contains(t, page.sql, "LIMIT ?")
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, likeEscaper.Replace(`a\b%c_d`))
}
