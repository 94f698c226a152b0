package option

import (
	"testing"

	"github.com/smallbiznis/storeadmin/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithQuerySortBy(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, SortBy{Column: "name", Desc: false}, WithQuerySortBy("Name", "asc", allowed))
	assert.Equal(t, SortBy{Column: "created_at", Desc: true}, WithQuerySortBy("price; DROP TABLE", "", allowed))
	assert.Equal(t, SortBy{Column: "created_at", Desc: true}, WithQuerySortBy("", "sideways", allowed))
}

func TestApplyBuildsOrderAndFilters(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	featured := true
	var categoryID *int64
	stmt := conn.Session(&gorm.Session{DryRun: true}).Table("products p")
	stmt = Apply(stmt,
		WithEquals("p.is_featured", &featured),
		WithEquals("p.category_id", categoryID),
		WithSortBy(WithQuerySortBy("price", "asc", map[string]bool{"price": true}).On("p")),
	)

	var rows []map[string]any
	sql := stmt.Find(&rows).Statement.SQL.String()
	assert.Contains(t, sql, "p.is_featured = ?")
	assert.NotContains(t, sql, "category_id")
	assert.Contains(t, sql, "ORDER BY p.price ASC,p.id ASC")
}
