package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/game"
)

// HealthHandler returns a handler for the GET /api/health endpoint.
func HealthHandler(cfg *config.Config, registry *game.Registry, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested", "remoteAddr", r.RemoteAddr)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         "ok",
			"version":        version,
			"activeSessions": registry.ActiveCount(),
			"dbPath":         cfg.DBPath,
		})
	}
}
