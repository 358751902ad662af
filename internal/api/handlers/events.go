package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slidery/slidery/internal/api/httputil"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/game"
)

// EventStream handles GET /api/events, a Server-Sent Events stream of
// session lifecycle events. A registry_state snapshot is sent on connect
// so clients can resync after a dropped connection.
func EventStream(hub *game.EventHub, registry *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			slog.Error("SSE not supported: response writer does not implement http.Flusher")
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "streaming not supported")
			return
		}

		slog.Info("SSE client connecting", "remoteAddr", r.RemoteAddr)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ch := hub.Subscribe()
		defer func() {
			hub.Unsubscribe(ch)
			slog.Info("SSE client disconnected", "remoteAddr", r.RemoteAddr)
		}()

		slog.Info("SSE client connected",
			"remoteAddr", r.RemoteAddr,
			"totalClients", hub.ClientCount(),
		)

		// Resync snapshot on connect.
		snapshot := game.RegistryStateData{ActiveSessions: registry.ActiveCount()}
		if data, err := json.Marshal(snapshot); err == nil {
			fmt.Fprintf(w, "event: registry_state\ndata: %s\n\n", data)
			flusher.Flush()
		} else {
			slog.Error("failed to marshal registry_state snapshot", "error", err)
		}

		keepAlive := time.NewTicker(config.SSEKeepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case event, ok := <-ch:
				if !ok {
					// Channel closed (hub shutdown).
					slog.Info("SSE channel closed, ending stream", "remoteAddr", r.RemoteAddr)
					return
				}

				data, err := json.Marshal(event.Data)
				if err != nil {
					slog.Error("failed to marshal SSE event data",
						"type", event.Type,
						"error", err,
					)
					continue
				}

				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
				flusher.Flush()

			case <-keepAlive.C:
				// Keepalive comment prevents idle connection timeouts.
				fmt.Fprint(w, ": keepalive\n\n")
				flusher.Flush()

			case <-r.Context().Done():
				slog.Info("SSE client context done",
					"remoteAddr", r.RemoteAddr,
					"reason", r.Context().Err(),
				)
				return
			}
		}
	}
}
