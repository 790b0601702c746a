package models

import "github.com/shopspring/decimal"

// OrderItem belongs to exactly one order. UnitPrice is the price at time of
// purchase; LineTotal is quantity * unit_price rounded to cents.
type OrderItem struct {
	OrderItemID int64           `gorm:"column:order_item_id;primaryKey;autoIncrement" json:"order_item_id"`
	OrderID     int64           `gorm:"column:order_id;not null" json:"order_id"`
	ProductID   int64           `gorm:"column:product_id;not null" json:"product_id"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;not null" json:"line_total"`
}

func (OrderItem) TableName() string { return "order_items" }
