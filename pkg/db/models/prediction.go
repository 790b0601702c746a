package models

// Prediction is produced exclusively by the external scoring job, keyed by
// order. A later run silently replaces the row for the same order.
type Prediction struct {
	OrderID                 int64   `gorm:"column:order_id;primaryKey" json:"order_id"`
	LateDeliveryProbability float64 `gorm:"column:late_delivery_probability" json:"late_delivery_probability"`
	PredictedLateDelivery   bool    `gorm:"column:predicted_late_delivery" json:"predicted_late_delivery"`
	PredictionTimestamp     string  `gorm:"column:prediction_timestamp" json:"prediction_timestamp"`
}

func (Prediction) TableName() string { return "order_predictions" }
