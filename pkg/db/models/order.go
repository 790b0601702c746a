package models

import "github.com/shopspring/decimal"

// OrderDatetimeLayout is the ISO-8601-like timestamp stored on orders.
// No timezone suffix; lexicographic order matches chronological order.
const OrderDatetimeLayout = "2006-01-02T15:04:05"

// Order rows are created once by the transaction manager and never updated.
// The order_id is assigned by the store at insert time.
type Order struct {
	OrderID       int64           `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	CustomerID    int64           `gorm:"column:customer_id;not null" json:"customer_id"`
	OrderDatetime string          `gorm:"column:order_datetime;not null" json:"order_datetime"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;not null" json:"subtotal"`
	ShippingFee   decimal.Decimal `gorm:"column:shipping_fee;not null" json:"shipping_fee"`
	Tax           decimal.Decimal `gorm:"column:tax;not null" json:"tax"`
	Total         decimal.Decimal `gorm:"column:total;not null" json:"total"`
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	DeviceType    string          `gorm:"column:device_type" json:"device_type"`
	Country       string          `gorm:"column:country" json:"country"`
	FraudScore    float64         `gorm:"column:fraud_score" json:"fraud_score"`
	HighRisk      bool            `gorm:"column:high_risk" json:"high_risk"`
}

func (Order) TableName() string { return "orders" }
