package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slidery/slidery/internal/api/httputil"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/game"
	"github.com/slidery/slidery/internal/puzzle"
)

// createGameRequest is the JSON body for POST /api/games.
// Seed and SeedPhrase are mutually exclusive; both empty means a random seed.
type createGameRequest struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Seed       string `json:"seed"`
	SeedPhrase string `json:"seed_phrase"`
	Player     string `json:"player"`
}

// createGameResponse adds the shareable mnemonic form of the seed to the
// initial session view.
type createGameResponse struct {
	game.Snapshot
	SeedPhrase string `json:"seed_phrase,omitempty"`
}

// moveRequest is the JSON body for POST /api/games/{id}/moves.
// Key takes precedence; otherwise X/Y coordinates are used.
type moveRequest struct {
	Key string `json:"key"`
	X   *int   `json:"x"`
	Y   *int   `json:"y"`
}

// moveResponse pairs the slide outcome with the refreshed session view.
type moveResponse struct {
	Moved      int           `json:"moved"`
	State      game.State    `json:"state"`
	Solved     bool          `json:"solved"`
	DurationMS int64         `json:"duration_ms,omitempty"`
	Session    game.Snapshot `json:"session"`
}

// CreateGame handles POST /api/games.
func CreateGame(registry *game.Registry, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid create game request body",
				"error", err,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
			return
		}

		width, height := req.Width, req.Height
		if width == 0 {
			width = cfg.BoardWidth
		}
		if height == 0 {
			height = cfg.BoardHeight
		}

		if width < config.MinBoardSide || width > config.MaxBoardSide ||
			height < config.MinBoardSide || height > config.MaxBoardSide {
			slog.Warn("invalid board shape requested",
				"width", width,
				"height", height,
			)
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidShape,
				fmt.Sprintf("board sides must be %d-%d, got %dx%d",
					config.MinBoardSide, config.MaxBoardSide, width, height))
			return
		}

		var seed *puzzle.Seed
		switch {
		case req.Seed != "" && req.SeedPhrase != "":
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest,
				"seed and seed_phrase are mutually exclusive")
			return
		case req.Seed != "":
			s, err := puzzle.ParseSeed(req.Seed)
			if err != nil {
				slog.Warn("invalid seed in create game request", "error", err)
				httputil.Error(w, http.StatusBadRequest, config.CodeInvalidSeed, "invalid seed")
				return
			}
			seed = &s
		case req.SeedPhrase != "":
			s, err := puzzle.ParsePhrase(req.SeedPhrase)
			if err != nil {
				slog.Warn("invalid seed phrase in create game request", "error", err)
				httputil.Error(w, http.StatusBadRequest, config.CodeInvalidSeed, "invalid seed phrase")
				return
			}
			seed = &s
		}

		player := strings.TrimSpace(req.Player)
		if len(player) > config.SolvePlayerMaxLen {
			player = player[:config.SolvePlayerMaxLen]
		}

		session, err := registry.Create(game.CreateOptions{
			Width:  width,
			Height: height,
			Seed:   seed,
			Player: player,
		})
		if err != nil {
			if errors.Is(err, config.ErrRegistryFull) {
				slog.Warn("session limit reached", "remoteAddr", r.RemoteAddr)
				httputil.Error(w, http.StatusTooManyRequests, config.CodeRegistryFull,
					"session limit reached, try again later")
				return
			}
			slog.Error("failed to create session", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal,
				"failed to create session")
			return
		}

		snap := session.Snapshot()
		resp := createGameResponse{Snapshot: snap}
		if s, err := puzzle.ParseSeed(snap.Seed); err == nil {
			if phrase, err := s.Phrase(); err == nil {
				resp.SeedPhrase = phrase
			}
		}

		httputil.JSON(w, http.StatusCreated, resp)
	}
}

// GetGame handles GET /api/games/{id}.
func GetGame(registry *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		session, err := registry.Get(id)
		if err != nil {
			httputil.Error(w, http.StatusNotFound, config.CodeSessionNotFound, "session not found")
			return
		}

		httputil.JSON(w, http.StatusOK, session.Snapshot())
	}
}

// ApplyMove handles POST /api/games/{id}/moves.
func ApplyMove(registry *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := chi.URLParam(r, "id")

		var req moveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid move request body",
				"error", err,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
			return
		}

		var (
			res game.SlideResult
			err error
		)
		switch {
		case req.Key != "":
			res, err = registry.SlideKey(id, req.Key)
		case req.X != nil && req.Y != nil:
			res, err = registry.SlideCell(id, *req.X, *req.Y)
		default:
			httputil.Error(w, http.StatusBadRequest, config.CodeInvalidRequest,
				"move requires either key or x and y")
			return
		}

		if err != nil {
			writeMoveError(w, id, err)
			return
		}

		session, err := registry.Get(id)
		if err != nil {
			httputil.Error(w, http.StatusNotFound, config.CodeSessionNotFound, "session not found")
			return
		}

		slog.Debug("move applied",
			"sessionID", id,
			"moved", res.Moved,
			"state", res.State,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)

		httputil.JSON(w, http.StatusOK, moveResponse{
			Moved:      res.Moved,
			State:      res.State,
			Solved:     res.Solved,
			DurationMS: res.DurationMS,
			Session:    session.Snapshot(),
		})
	}
}

func writeMoveError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, config.ErrSessionNotFound):
		httputil.Error(w, http.StatusNotFound, config.CodeSessionNotFound, "session not found")
	case errors.Is(err, config.ErrSessionSolved):
		httputil.Error(w, http.StatusConflict, config.CodeSessionSolved,
			"session already solved, restart to play again")
	case errors.Is(err, config.ErrUnknownKey), errors.Is(err, config.ErrKeyOutOfBounds):
		httputil.Error(w, http.StatusBadRequest, config.CodeUnknownKey, err.Error())
	default:
		slog.Error("failed to apply move", "sessionID", id, "error", err)
		httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to apply move")
	}
}

// RestartGame handles POST /api/games/{id}/restart.
func RestartGame(registry *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		session, err := registry.Restart(id)
		if err != nil {
			if errors.Is(err, config.ErrSessionNotFound) {
				httputil.Error(w, http.StatusNotFound, config.CodeSessionNotFound, "session not found")
				return
			}
			slog.Error("failed to restart session", "sessionID", id, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.CodeInternal, "failed to restart session")
			return
		}

		httputil.JSON(w, http.StatusOK, session.Snapshot())
	}
}

// DeleteGame handles DELETE /api/games/{id}.
func DeleteGame(registry *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := registry.Delete(id); err != nil {
			httputil.Error(w, http.StatusNotFound, config.CodeSessionNotFound, "session not found")
			return
		}

		httputil.JSON(w, http.StatusOK, map[string]string{"message": "session deleted"})
	}
}
