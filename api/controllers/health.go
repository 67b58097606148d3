package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/loopstackhq/loopstack-backend/api/responses"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	pkgerrors "github.com/loopstackhq/loopstack-backend/pkg/errors"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
)

// ReadinessCheck names a backing dependency and how to probe it.
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Loopstack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Loopstack-Env", cfg.App.Env)

		var combined error
		for _, check := range deps {
			if check.Ping == nil {
				continue
			}
			if err := check.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				if logg != nil {
					ctx := logg.WithField(r.Context(), "dependency", check.Name)
					logg.Error(ctx, "readiness check failed", err)
				}
			}
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
