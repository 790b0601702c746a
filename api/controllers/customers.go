package controllers

import (
	"net/http"

	"github.com/shopsight-ai/shopsight-backend/api/responses"
	"github.com/shopsight-ai/shopsight-backend/internal/catalog"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// ListCustomers serves the active customer roster from the current snapshot.
func ListCustomers(gw *store.Gateway, repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		h, err := gw.Acquire(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		defer func() { _ = gw.Release(ctx, h, false) }()

		customers, err := repo.ListActiveCustomers(ctx, h)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, customers)
	}
}
