package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/slidery/slidery/internal/api/httputil"
	"github.com/slidery/slidery/internal/api/middleware"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/db"
)

// loginRequest is the JSON body for POST /api/admin/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func Login(sessions *middleware.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid login request body",
				"error", err,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
			return
		}

		token, err := sessions.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, config.ErrInvalidCredentials) {
				httputil.Error(w, http.StatusUnauthorized, config.CodeUnauthorized, "invalid credentials")
				return
			}
			slog.Error("login failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "login failed")
			return
		}

		httputil.JSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Logout handles POST /api/admin/logout.
func Logout(sessions *middleware.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("X-Session-Token"); token != "" {
			sessions.Logout(token)
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

// GetSettings handles GET /api/admin/settings.
func GetSettings(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := database.GetAllSettings()
		if err != nil {
			slog.Error("failed to fetch settings", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to fetch settings")
			return
		}

		httputil.JSON(w, http.StatusOK, settings)
	}
}

// settingBounds defines the accepted integer range per mutable setting.
var settingBounds = map[string][2]int{
	"board_width":     {config.MinBoardSide, config.MaxBoardSide},
	"board_height":    {config.MinBoardSide, config.MaxBoardSide},
	"max_sessions":    {1, 10000},
	"session_ttl_min": {1, 1440},
	"leaderboard_max": {1, 1000},
}

// UpdateSettings handles PUT /api/admin/settings.
// The body is a flat map of setting key to value; unknown keys and
// out-of-range values are rejected before anything is written.
func UpdateSettings(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid settings request body",
				"error", err,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
			return
		}

		for key, value := range req {
			bounds, ok := settingBounds[key]
			if !ok {
				httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest, "unknown setting: "+key)
				return
			}
			v, err := strconv.Atoi(value)
			if err != nil || v < bounds[0] || v > bounds[1] {
				httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest,
					"setting "+key+" must be an integer between "+
						strconv.Itoa(bounds[0])+" and "+strconv.Itoa(bounds[1]))
				return
			}
		}

		for key, value := range req {
			if err := database.SetSetting(key, value); err != nil {
				slog.Error("failed to update setting", "key", key, "error", err)
				httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to update settings")
				return
			}
		}

		slog.Info("settings updated", "count", len(req))

		settings, err := database.GetAllSettings()
		if err != nil {
			slog.Error("failed to fetch settings after update", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to fetch settings")
			return
		}

		httputil.JSON(w, http.StatusOK, settings)
	}
}

// ClearSolves handles DELETE /api/admin/solves.
func ClearSolves(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := database.CountSolves()
		if err != nil {
			slog.Error("failed to count solves", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to clear solves")
			return
		}

		if err := database.DeleteSolves(); err != nil {
			slog.Error("failed to clear solves", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to clear solves")
			return
		}

		slog.Info("solve history cleared", "deleted", count)
		httputil.JSON(w, http.StatusOK, map[string]int{"deleted": count})
	}
}
