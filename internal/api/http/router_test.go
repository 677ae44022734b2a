package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/api/http/handlers"
	"github.com/jcdoncaster/shift-management-bot/internal/auth"
	"github.com/jcdoncaster/shift-management-bot/internal/command"
	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/events"
	"github.com/jcdoncaster/shift-management-bot/internal/observability"
	"github.com/jcdoncaster/shift-management-bot/internal/persistence"
	"github.com/jcdoncaster/shift-management-bot/internal/registry"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
)

const testAdminPassword = "letmein"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "shift-data.json"))
	manager := persistence.NewManager(store, persistence.JSONCodec{}, logger, time.Second)

	engine := service.NewShiftEngine(config.StorageConfig{}, service.Dependencies{
		Staff:      registry.NewStaffRegistry(nil),
		Active:     registry.NewActiveShiftTracker(),
		History:    registry.NewShiftHistoryStore(nil),
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
	})
	manager.SetProvider(engine.Snapshot)

	hash, err := auth.HashPassword(testAdminPassword, 4)
	require.NoError(t, err)
	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, AdminPasswordHash: hash}
	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.AccessTokenTTLMinutes)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", manager),
		Staff:          handlers.NewStaffHandler(engine),
		Shifts:         handlers.NewShiftsHandler(engine),
		Admin:          handlers.NewAdminHandler(engine, tokens, authCfg),
		Commands:       handlers.NewCommandsHandler(command.NewDispatcher(engine, logger)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*nethttp.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)
	payload := map[string]any{"identity": "U1", "display_name": "Alice", "role": "Manager", "contact": "a@x.com"}

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/staff/register", payload, nil)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/staff/register", payload, nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "ALREADY_REGISTERED", errObj["code"])
}

func TestRegisterEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/staff/register", map[string]any{"identity": "U1"}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestShiftLifecycleEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/shifts/clockin", map[string]any{"identity": "U1"}, nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NOT_REGISTERED", body["error"].(map[string]any)["code"])

	doJSON(t, app, nethttp.MethodPost, "/staff/register",
		map[string]any{"identity": "U1", "display_name": "Alice", "role": "Manager", "contact": "a@x.com"}, nil)

	resp, _ = doJSON(t, app, nethttp.MethodPost, "/shifts/clockin", map[string]any{"identity": "U1"}, nil)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, nethttp.MethodPost, "/shifts/clockin", map[string]any{"identity": "U1"}, nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_CLOCKED_IN", body["error"].(map[string]any)["code"])

	resp, body = doJSON(t, app, nethttp.MethodGet, "/staff/U1/status", nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]any)["clocked_in"])

	resp, body = doJSON(t, app, nethttp.MethodPost, "/shifts/clockout", map[string]any{"identity": "U1"}, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	record := body["data"].(map[string]any)
	assert.Equal(t, "U1", record["identity"])
	assert.NotEmpty(t, record["id"])

	resp, body = doJSON(t, app, nethttp.MethodGet, "/staff/U1/shifts?limit=5", nil, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)
}

func TestStatusUnknownIdentity(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/staff/ghost/status", nil, nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NOT_REGISTERED", body["error"].(map[string]any)["code"])
}

func TestCommandsEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/commands",
		map[string]any{"identity": "U1", "display_name": "Alice", "text": "register Manager a@x.com"}, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Registered Alice as Manager (a@x.com).", body["data"].(map[string]any)["reply"])
}

func TestAdminStatsRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/admin/stats", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestAdminLoginAndStats(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/auth/admin/login",
		map[string]any{"password": "wrong"}, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, app, nethttp.MethodPost, "/auth/admin/login",
		map[string]any{"password": testAdminPassword}, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	doJSON(t, app, nethttp.MethodPost, "/staff/register",
		map[string]any{"identity": "U1", "display_name": "Alice", "role": "Manager", "contact": "a@x.com"}, nil)

	resp, body = doJSON(t, app, nethttp.MethodGet, "/admin/stats", nil,
		map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	stats := body["data"].(map[string]any)
	assert.EqualValues(t, 1, stats["staff_count"])
	assert.EqualValues(t, 0, stats["total_shifts"])
	assert.EqualValues(t, 0, stats["active_count"])
}
