package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slidery/slidery/internal/game"
)

func TestHealthHandler(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := env.Registry.Create(game.CreateOptions{Width: 4, Height: 4}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	handler := HealthHandler(env.Config, env.Registry, "test")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("version = %v, want test", body["version"])
	}
	if body["activeSessions"] != float64(1) {
		t.Errorf("activeSessions = %v, want 1", body["activeSessions"])
	}
}
