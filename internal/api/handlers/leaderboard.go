package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/slidery/slidery/internal/api/httputil"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/db"
	"github.com/slidery/slidery/internal/models"
)

// Leaderboard handles GET /api/leaderboard.
// Query params: width, height (board shape, defaults from config) and
// limit (capped at the configured maximum).
func Leaderboard(database *db.DB, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width := queryInt(r, "width", cfg.BoardWidth)
		height := queryInt(r, "height", cfg.BoardHeight)
		limit := queryInt(r, "limit", cfg.LeaderboardMax)

		if width < config.MinBoardSide || width > config.MaxBoardSide ||
			height < config.MinBoardSide || height > config.MaxBoardSide {
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidShape, "invalid board shape")
			return
		}
		if limit < 1 || limit > cfg.LeaderboardMax {
			limit = cfg.LeaderboardMax
		}

		solves, err := database.BestSolves(width, height, limit)
		if err != nil {
			slog.Error("failed to fetch leaderboard", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to fetch leaderboard")
			return
		}
		if solves == nil {
			solves = []models.Solve{}
		}

		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"width":  width,
			"height": height,
			"solves": solves,
		})
	}
}

// RecentSolves handles GET /api/solves/recent.
func RecentSolves(database *db.DB, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", cfg.LeaderboardMax)
		if limit < 1 || limit > cfg.LeaderboardMax {
			limit = cfg.LeaderboardMax
		}

		solves, err := database.RecentSolves(limit)
		if err != nil {
			slog.Error("failed to fetch recent solves", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to fetch recent solves")
			return
		}
		if solves == nil {
			solves = []models.Solve{}
		}

		httputil.JSON(w, http.StatusOK, map[string]interface{}{"solves": solves})
	}
}

// queryInt parses an integer query parameter, falling back to def when
// missing or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
