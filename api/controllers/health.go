package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/nvteo/bakeshop-backend/api/responses"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
)

// Pinger reports reachability of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as soon as the process serves traffic.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database and key/value store.
func HealthReady(dbPinger, redisPinger Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ready", "db": "ok", "redis": "ok"}
		healthy := true

		if dbPinger != nil {
			if err := dbPinger.Ping(ctx); err != nil {
				status["db"] = "unreachable"
				healthy = false
			}
		}
		if redisPinger != nil {
			if err := redisPinger.Ping(ctx); err != nil {
				status["redis"] = "unreachable"
				healthy = false
			}
		}

		if !healthy {
			status["status"] = "degraded"
			if logg != nil {
				logg.Warn(r.Context(), "readiness check failed")
			}
			responses.WriteJSONStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteJSON(w, status)
	}
}
