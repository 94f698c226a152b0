package option

import (
	"strings"

	"gorm.io/gorm"
)

// QueryOption narrows or orders a gorm statement.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// SortBy orders by a single whitelisted column.
type SortBy struct {
	// Table qualifies Column and the id tie breaker in joined queries.
	Table  string
	Column string
	Desc   bool
}

// On returns s qualified by table alias.
func (s SortBy) On(table string) SortBy {
	s.Table = table
	return s
}

// WithQuerySortBy builds a SortBy from request parameters. Columns outside
// allowed fall back to created_at; anything but "asc" sorts descending.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) SortBy {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if !allowed[column] {
		column = "created_at"
	}
	return SortBy{
		Column: column,
		Desc:   !strings.EqualFold(strings.TrimSpace(orderBy), "asc"),
	}
}

func WithSortBy(s SortBy) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if s.Column == "" {
			return db
		}
		direction := " ASC"
		if s.Desc {
			direction = " DESC"
		}
		prefix := ""
		if s.Table != "" {
			prefix = s.Table + "."
		}
		// id breaks ties between rows created in the same instant.
		return db.Order(prefix + s.Column + direction).Order(prefix + "id" + direction)
	})
}

// WithEquals filters column = value when value is non-nil.
func WithEquals[T any](column string, value *T) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	})
}

// Apply applies opts in order.
func Apply(db *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		if opt != nil {
			db = opt.Apply(db)
		}
	}
	return db
}
