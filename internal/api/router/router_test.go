package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"organizer/backend/config"
	"organizer/backend/internal/api/handler"
	"organizer/backend/pkg/jwt"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func setupEngine(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{MaxUploadMB: 1},
		Auth:   config.AuthConfig{JWTSecret: "router-test-secret-0001", AccessTokenTTL: time.Minute},
	}
	mgr := jwt.NewManager(&cfg.Auth)
	h := &handler.Handler{
		Schedule: handler.NewScheduleHandler(nil, nil, nil, "en", zap.NewNop()),
		Health:   handler.NewHealthHandler(okPinger{}, nil),
	}
	return Setup(cfg, h, mgr, zap.NewNop()), mgr
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, _ := setupEngine(t)

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_UploadRequiresSchedulerRole(t *testing.T) {
	engine, mgr := setupEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/organizations/1/schedules", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _ := mgr.GenerateAccessToken("u-1", "viewer", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/organizations/1/schedules", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
