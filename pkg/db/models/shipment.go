package models

// Shipment is written by fulfillment systems outside this service. Orders
// without a shipment row are the "unfulfilled" set the scoring job selects.
type Shipment struct {
	ShipmentID   int64  `gorm:"column:shipment_id;primaryKey;autoIncrement" json:"shipment_id"`
	OrderID      int64  `gorm:"column:order_id;not null" json:"order_id"`
	ShipDatetime string `gorm:"column:ship_datetime" json:"ship_datetime"`
	LateDelivery bool   `gorm:"column:late_delivery;not null;default:false" json:"late_delivery"`
}

func (Shipment) TableName() string { return "shipments" }
