package integrity

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/smallbiznis/storeadmin/pkg/db"
	"gorm.io/gorm"
)

// Resource kinds guarded on delete.
const (
	Store     = "store"
	Billboard = "billboard"
	Category  = "category"
	Size      = "size"
	Color     = "color"
	Product   = "product"
	Order     = "order"
)

// Dependent is a table whose rows keep a target alive.
type Dependent struct {
	Name   string
	Table  string
	Column string
}

// Rule lists what blocks deleting one resource kind.
type Rule struct {
	Dependents []Dependent
	Message    string
}

// Rules is the referential integrity table. Kinds without an entry (orders)
// have no dependents; their own child rows cascade.
var Rules = map[string]Rule{
	Store: {
		Dependents: []Dependent{
			{Name: "billboard", Table: "billboards", Column: "store_id"},
			{Name: "category", Table: "categories", Column: "store_id"},
			{Name: "size", Table: "sizes", Column: "store_id"},
			{Name: "color", Table: "colors", Column: "store_id"},
			{Name: "product", Table: "products", Column: "store_id"},
			{Name: "order", Table: "orders", Column: "store_id"},
		},
		Message: "Make sure you removed all products and categories first.",
	},
	Billboard: {
		Dependents: []Dependent{{Name: "category", Table: "categories", Column: "billboard_id"}},
		Message:    "Make sure you removed all categories using this billboard first.",
	},
	Category: {
		Dependents: []Dependent{{Name: "product", Table: "products", Column: "category_id"}},
		Message:    "Make sure you removed all products using this category first.",
	},
	Size: {
		Dependents: []Dependent{{Name: "product", Table: "products", Column: "size_id"}},
		Message:    "Make sure you removed all products using this size first.",
	},
	Color: {
		Dependents: []Dependent{{Name: "product", Table: "products", Column: "color_id"}},
		Message:    "Make sure you removed all products using this color first.",
	},
	Product: {
		Dependents: []Dependent{{Name: "order", Table: "order_items", Column: "product_id"}},
		Message:    "Make sure you removed all orders using this product first.",
	},
}

// Decision is the outcome of CanDelete.
type Decision struct {
	Allowed bool
	Reason  string
	// Dependent is the first dependent found.
	Dependent string
}

// CanDelete reports whether id of kind has no dependents. Run it on the
// transaction that performs the delete.
func CanDelete(ctx context.Context, tx *gorm.DB, kind string, id snowflake.ID) (Decision, error) {
	rule, ok := Rules[kind]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	for _, dep := range rule.Dependents {
		var found int64
		err := tx.WithContext(ctx).Raw(
			fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE %s = ?`, dep.Table, dep.Column),
			id,
		).Scan(&found).Error
		if err != nil {
			return Decision{}, fmt.Errorf("count %s for %s %s: %w", dep.Table, kind, id, err)
		}
		if found > 0 {
			return Decision{Reason: rule.Message, Dependent: dep.Name}, nil
		}
	}
	return Decision{Allowed: true}, nil
}

// Blocked returns the conflict error for a delete of kind refused by dependents.
func Blocked(kind, dependent string) error {
	message := "Make sure you removed all dependent records first."
	if rule, ok := Rules[kind]; ok {
		message = rule.Message
	}
	return &resource.ConflictError{Message: message, Dependent: dependent}
}

// Err converts a blocking decision into its error, or nil when allowed.
func (d Decision) Err(kind string) error {
	if d.Allowed {
		return nil
	}
	return Blocked(kind, d.Dependent)
}

// TranslateDelete maps a foreign key rejection raised by a delete of kind to the
// same conflict a pre-delete check would report. A concurrent insert can slip
// between the check and the delete.
func TranslateDelete(kind string, err error) error {
	if err == nil {
		return nil
	}
	if db.IsForeignKeyViolation(err) {
		return Blocked(kind, "")
	}
	return err
}

// TranslateReference maps a foreign key rejection on insert or update to an
// invalid reference conflict.
func TranslateReference(err error, message string) error {
	if err == nil {
		return nil
	}
	if db.IsForeignKeyViolation(err) {
		return resource.Conflict(message)
	}
	return err
}
