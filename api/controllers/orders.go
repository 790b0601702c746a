package controllers

import (
	"net/http"

	"github.com/shopsight-ai/shopsight-backend/api/responses"
	"github.com/shopsight-ai/shopsight-backend/api/validators"
	ordersvc "github.com/shopsight-ai/shopsight-backend/internal/orders"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// ListOrders serves one customer's order history, newest first. The
// customerId query parameter is required.
func ListOrders(gw *store.Gateway, svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, err := validators.ParseQueryID(r, "customerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		h, err := gw.Acquire(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		defer func() { _ = gw.Release(ctx, h, false) }()

		orders, err := svc.ListByCustomer(ctx, h, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// PlaceOrder runs the order transaction and persists the mutated snapshot
// before acknowledging the caller. A failed persist means the order was not
// durably placed, so it is reported as an error rather than a success.
func PlaceOrder(gw *store.Gateway, svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload ordersvc.PlaceOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		h, err := gw.Acquire(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.PlaceOrder(ctx, h, payload)
		if err != nil {
			_ = gw.Release(ctx, h, false)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := gw.Release(ctx, h, h.Mutated()); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"orderId": result.OrderID,
			"success": true,
		})
	}
}
