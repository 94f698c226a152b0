package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64     `gorm:"primaryKey"`
	StoreID   int64     `gorm:"column:store_id"`
	IsPaid    bool      `gorm:"column:is_paid"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"column:order_id"`
	ProductID int64 `gorm:"column:product_id"`
}

func (OrderItem) TableName() string { return "order_items" }

// Line is an order item joined with its product.
type Line struct {
	OrderItem
	ProductName  string          `gorm:"column:product_name"`
	ProductPrice decimal.Decimal `gorm:"column:product_price"`
}
