package handlers

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/db"
	"github.com/slidery/slidery/internal/game"
)

// testEnv bundles the dependencies handler tests wire up.
type testEnv struct {
	DB       *db.DB
	Hub      *game.EventHub
	Registry *game.Registry
	Config   *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	hub := game.NewEventHub()
	registry := game.NewRegistry(database, hub, 16, time.Hour)

	cfg := &config.Config{
		BoardWidth:     4,
		BoardHeight:    4,
		MaxSessions:    16,
		LeaderboardMax: 100,
	}

	return &testEnv{DB: database, Hub: hub, Registry: registry, Config: cfg}
}

// gameRouter mounts the game routes the way the main router does.
func (env *testEnv) gameRouter() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/games", CreateGame(env.Registry, env.Config))
	r.Get("/api/games/{id}", GetGame(env.Registry))
	r.Post("/api/games/{id}/moves", ApplyMove(env.Registry))
	r.Post("/api/games/{id}/restart", RestartGame(env.Registry))
	r.Delete("/api/games/{id}", DeleteGame(env.Registry))
	return r
}
