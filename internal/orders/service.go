package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
	"github.com/shopsight-ai/shopsight-backend/pkg/money"
)

type ServiceParams struct {
	Repo    Repository
	Logger  *logger.Logger
	Metrics *metrics.OrderMetrics
	Now     func() time.Time
}

type service struct {
	repo     Repository
	logg     *logger.Logger
	metrics  *metrics.OrderMetrics
	validate *validator.Validate
	now      func() time.Time
}

func NewService(p ServiceParams) Service {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     p.Repo,
		logg:     p.Logger,
		metrics:  p.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
}

// PlaceOrder runs the full placement transaction: resolve products, price
// every line at the current unit price, compute totals, then insert the order
// and its items atomically. The caller's handle is marked mutated only after
// the transaction commits.
func (s *service) PlaceOrder(ctx context.Context, h *snapshot.Handle, req PlaceOrderRequest) (PlaceOrderResult, error) {
	if err := s.validate.Struct(req); err != nil {
		s.metrics.IncPlaced(metrics.OutcomeFailure)
		return PlaceOrderResult{}, pkgerrors.
			Wrap(pkgerrors.CodeValidation, err, "invalid order request").
			WithDetails(validationDetails(err))
	}

	order := models.Order{
		CustomerID:    req.CustomerID,
		OrderDatetime: s.now().UTC().Format(models.OrderDatetimeLayout),
		PaymentMethod: req.PaymentMethod,
		DeviceType:    req.DeviceType,
		Country:       req.Country,
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, item := range req.Items {
		if !item.UnitPrice.IsPositive() {
			s.metrics.IncPlaced(metrics.OutcomeFailure)
			return PlaceOrderResult{}, pkgerrors.
				New(pkgerrors.CodeValidation, "unit price must be positive").
				WithDetails(map[string]any{"productId": item.ProductID})
		}

		lineTotal := money.LineTotal(item.Quantity, item.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	order.Subtotal = money.Round2(subtotal)
	order.ShippingFee = money.ShippingFee(order.Subtotal)
	order.Tax = money.Tax(order.Subtotal)
	order.Total = money.Total(order.Subtotal, order.ShippingFee, order.Tax)

	err := h.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.InsertOrder(tx, &order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.OrderID
		}
		return s.repo.InsertItems(tx, items)
	})
	if err != nil {
		s.metrics.IncPlaced(metrics.OutcomeFailure)
		s.logg.Error(ctx, "order transaction rolled back", err)
		return PlaceOrderResult{}, pkgerrors.
			Wrap(pkgerrors.CodeTransactionFailed, err, "placing order").
			WithDetails(map[string]any{"reason": err.Error()})
	}

	h.MarkMutated()
	s.metrics.IncPlaced(metrics.OutcomeSuccess)
	s.logg.Info(ctx, fmt.Sprintf("order %d placed for customer %d", order.OrderID, order.CustomerID))

	return PlaceOrderResult{OrderID: order.OrderID}, nil
}

func (s *service) ListByCustomer(ctx context.Context, h *snapshot.Handle, customerID int64) ([]models.Order, error) {
	if customerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerId must be a positive integer")
	}
	return s.repo.ListByCustomer(ctx, h, customerID)
}

func validationDetails(err error) any {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
