package controllers

import (
	"context"
	"net/http"

	"github.com/shopsight-ai/shopsight-backend/api/responses"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

type storagePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopSight-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the durable blob backend is reachable. A failed ping
// means every store-backed endpoint would fail, so readiness reports it.
func HealthReady(cfg *config.Config, logg *logger.Logger, objects storagePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopSight-Env", cfg.App.Env)

		if objects != nil {
			if err := objects.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "durable storage ping failed"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
