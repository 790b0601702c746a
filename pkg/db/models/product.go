package models

import "github.com/shopspring/decimal"

type Product struct {
	ProductID int64           `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	SKU       string          `gorm:"column:sku" json:"sku"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Category  string          `gorm:"column:category" json:"category"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;not null" json:"unit_price"`
	Cost      decimal.Decimal `gorm:"column:cost" json:"cost"`
	Active    bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (Product) TableName() string { return "products" }
