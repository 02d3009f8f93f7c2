package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	accountMocks "github.com/allisson/accounts/internal/account/usecase/mocks"
	"github.com/allisson/accounts/internal/config"
	"github.com/allisson/accounts/internal/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRoutedServer builds a Server with the full router and a mocked account use case.
func newRoutedServer(
	t *testing.T,
	db *sql.DB,
	cfg *config.Config,
	provider *metrics.Provider,
) (*Server, *accountMocks.MockAccountUseCase) {
	t.Helper()
	useCase := &accountMocks.MockAccountUseCase{}
	handler := accountHTTP.NewAccountHandler(useCase, accountHTTP.CookieConfig{Name: "authToken"}, discardLogger())

	server := NewServer(db, "127.0.0.1", 0, discardLogger())
	server.SetupRouter(cfg, handler, provider)
	return server, useCase
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	server, _ := newRoutedServer(t, nil, &config.Config{}, nil)

	w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestServer_Readiness(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		server, _ := newRoutedServer(t, nil, &config.Config{}, nil)

		w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, "not_ready", body["status"])
		assert.Equal(t, map[string]any{"database": "error"}, body["components"])
	})

	t.Run("database reachable", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server, _ := newRoutedServer(t, db, &config.Config{}, nil)
		w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"database": "ok"}, decode(t, w)["components"])
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server, _ := newRoutedServer(t, db, &config.Config{}, nil)
		w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestServer_AccountRoutes(t *testing.T) {
	cfg := &config.Config{CORSEnabled: true, CORSAllowOrigins: "http://localhost:5173"}
	server, useCase := newRoutedServer(t, nil, cfg, nil)
	useCase.On("Logout", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(server.GetHandler(), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	requestID, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), requestID.Version())
	useCase.AssertExpectations(t)

	w = serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/auth/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_MetricsMiddleware(t *testing.T) {
	provider, err := metrics.NewProvider("router_test")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	cfg := &config.Config{MetricsNamespace: "router_test"}
	server, _ := newRoutedServer(t, nil, cfg, provider)

	serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/health", nil))

	// The API listener never exposes the scrape endpoint.
	w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(provider.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Regexp(t, `router_test_http_requests_total\{[^}]*path="/health"`, w.Body.String())
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(gin.Recovery())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	levels := map[string]string{
		"/ok?page=1": "INFO",
		"/bad":       "WARN",
		"/panic":     "ERROR",
	}
	for path, level := range levels {
		buf.Reset()
		serve(router, httptest.NewRequest(http.MethodGet, path, nil))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), path)
		assert.Equal(t, level, entry["level"], path)
		assert.Equal(t, path, entry["path"])
		assert.Equal(t, "http request", entry["msg"])
	}
}

func TestMetricsServer(t *testing.T) {
	provider, err := metrics.NewProvider("scrape_test")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	server := NewMetricsServer("127.0.0.1", 0, discardLogger(), provider)

	w := serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = serve(server.GetHandler(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	server, _ := newRoutedServer(t, nil, &config.Config{}, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	assert.ErrorContains(t, server.Start(context.Background()), "router not initialized")
}
