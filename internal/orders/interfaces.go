package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
)

// Service places orders against a snapshot handle and serves order history.
type Service interface {
	PlaceOrder(ctx context.Context, h *snapshot.Handle, req PlaceOrderRequest) (PlaceOrderResult, error)
	ListByCustomer(ctx context.Context, h *snapshot.Handle, customerID int64) ([]models.Order, error)
}

// Repository is the persistence surface the service drives. Insert methods
// run inside the order transaction and receive its tx. Referential integrity
// is enforced by the store's foreign keys, so a dangling customer or product
// reference surfaces as an insert error and rolls the transaction back.
type Repository interface {
	InsertOrder(tx *gorm.DB, order *models.Order) error
	InsertItems(tx *gorm.DB, items []models.OrderItem) error
	ListByCustomer(ctx context.Context, h *snapshot.Handle, customerID int64) ([]models.Order, error)
}
