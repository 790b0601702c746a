package controllers

import (
	"net/http"

	"github.com/shopsight-ai/shopsight-backend/api/responses"
	"github.com/shopsight-ai/shopsight-backend/api/validators"
	"github.com/shopsight-ai/shopsight-backend/internal/predictions"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// PriorityQueue serves the late-delivery queue: scored orders joined with
// their customer, highest risk first, capped at 50 rows. An optional limit
// query parameter narrows the page within that cap.
func PriorityQueue(gw *store.Gateway, repo *predictions.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", predictions.QueueLimit, 1, predictions.QueueLimit)
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

		rows, err := repo.PriorityQueue(ctx, h, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
