package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/pkg/config"
	dbpkg "github.com/sahilkadam/medipay-backend/pkg/db"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	pkgredis "github.com/sahilkadam/medipay-backend/pkg/redis"
)

const readyCheckTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MediPay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the hard dependencies before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, db dbpkg.Pinger, redis pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MediPay-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
			checks["database"] = "ok"
		}

		if redis != nil {
			if err := redis.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
