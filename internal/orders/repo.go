package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
)

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

// InsertOrder relies on the store assigning order_id; GORM writes the new
// key back into order.OrderID.
func (r *repository) InsertOrder(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *repository) InsertItems(tx *gorm.DB, items []models.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *repository) ListByCustomer(ctx context.Context, h *snapshot.Handle, customerID int64) ([]models.Order, error) {
	orders := []models.Order{}
	err := h.DB().WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_datetime DESC, order_id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}
