package catalog

import (
	"context"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
)

// Repository serves the read-only customer and product views. Rows are seed
// data inside the snapshot; nothing here mutates the handle.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) ListActiveCustomers(ctx context.Context, h *snapshot.Handle) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := h.DB().WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customers")
	}
	return customers, nil
}

func (r *Repository) ListActiveProducts(ctx context.Context, h *snapshot.Handle) ([]models.Product, error) {
	products := []models.Product{}
	err := h.DB().WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, nil
}
