package predictions

import (
	"context"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
)

// QueueLimit caps the priority queue at the rows an operator can act on.
const QueueLimit = 50

// QueueRow is one entry of the late-delivery priority queue: an unshipped
// order joined with its customer and latest prediction.
type QueueRow struct {
	OrderID                 int64   `gorm:"column:order_id" json:"order_id"`
	CustomerID              int64   `gorm:"column:customer_id" json:"customer_id"`
	CustomerName            string  `gorm:"column:customer_name" json:"customer_name"`
	OrderDatetime           string  `gorm:"column:order_datetime" json:"order_datetime"`
	Total                   string  `gorm:"column:total" json:"total"`
	LateDeliveryProbability float64 `gorm:"column:late_delivery_probability" json:"late_delivery_probability"`
	PredictedLateDelivery   bool    `gorm:"column:predicted_late_delivery" json:"predicted_late_delivery"`
	PredictionTimestamp     string  `gorm:"column:prediction_timestamp" json:"prediction_timestamp"`
}

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// PriorityQueue returns scored orders most at risk of late delivery, highest
// probability first. Ties break on order_id ascending so the ordering is
// stable across reads of the same snapshot. Orders without a prediction row
// never appear. limit is clamped to QueueLimit; zero or negative means the
// full cap.
func (r *Repository) PriorityQueue(ctx context.Context, h *snapshot.Handle, limit int) ([]QueueRow, error) {
	if limit <= 0 || limit > QueueLimit {
		limit = QueueLimit
	}

	rows := []QueueRow{}
	err := h.DB().WithContext(ctx).
		Raw(`
			SELECT
				o.order_id,
				o.customer_id,
				c.name AS customer_name,
				o.order_datetime,
				o.total,
				p.late_delivery_probability,
				p.predicted_late_delivery,
				p.prediction_timestamp
			FROM order_predictions p
			JOIN orders o ON o.order_id = p.order_id
			JOIN customers c ON c.customer_id = o.customer_id
			ORDER BY p.late_delivery_probability DESC, o.order_id ASC
			LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading priority queue")
	}
	return rows, nil
}
