package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curypulse/internal/config"
	"curypulse/internal/infrastructure"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// newTestApplication wires an Application against a small on-disk dataset
// without going through config.Load.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "train.csv")
	dataset := "ID,Delivery_person_ID,Delivery_person_Age,Delivery_person_Ratings," +
		"Restaurant_latitude,Restaurant_longitude,Delivery_location_latitude,Delivery_location_longitude," +
		"Order_Date,Weatherconditions,Road_traffic_density,Vehicle_condition,Type_of_order,Type_of_vehicle," +
		"multiple_deliveries,Festival,City,Time_taken(min)\n" +
		"0x1,D1,37,4.9,22.745049,75.892471,22.765049,75.912471,19-03-2022,conditions Sunny,High ,2,Snack ,motorcycle ,0,No ,Urban ,(min) 24\n"
	require.NoError(t, os.WriteFile(datasetPath, []byte(dataset), 0644))

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Dataset.Path = datasetPath

	logger := createTestLogger()
	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	require.NoError(t, err)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}
	require.NoError(t, app.initializeServices())
	app.setupRouter()
	app.createServer()
	return app
}

func TestApplication_initializeServices(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.DashboardService)
	assert.NotNil(t, app.HealthService)
	assert.NotNil(t, app.BusinessMetrics)
	assert.NotNil(t, app.SystemCollector)
}

func TestApplication_setupRouter(t *testing.T) {
	app := newTestApplication(t)

	server := httptest.NewServer(app.Router)
	defer server.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"health endpoint", "/api/health", http.StatusOK},
		{"readiness endpoint", "/api/health/ready", http.StatusOK},
		{"version endpoint", "/api/version", http.StatusOK},
		{"company view", "/api/dashboard/company", http.StatusOK},
		{"drivers view", "/api/dashboard/drivers", http.StatusOK},
		{"restaurants view", "/api/dashboard/restaurants", http.StatusOK},
		{"order export", "/api/dashboard/export/orders.csv", http.StatusOK},
		{"company charts", "/charts/company", http.StatusOK},
		{"landing page", "/", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestApplication_setupRouter_MissingDataset(t *testing.T) {
	app := newTestApplication(t)
	require.NoError(t, os.Remove(app.Config.Dataset.Path))

	server := httptest.NewServer(app.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/dashboard/company")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestApplication_createServer(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.Server)
	assert.Equal(t, fmt.Sprintf(":%d", app.Config.Server.Port), app.Server.Addr)
	assert.Equal(t, app.Router, app.Server.Handler)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.Equal(t, app.Config.Server.WriteTimeout, app.Server.WriteTimeout)
}

func TestApplication_getCORSConfig(t *testing.T) {
	app := newTestApplication(t)
	app.Config.Security.EnableCORS = true
	app.Config.Security.AllowedOrigins = []string{"https://dashboard.example.com"}

	cfg := app.getCORSConfig()

	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:8080")
	assert.Contains(t, cfg.AllowedOrigins, "https://dashboard.example.com")
	assert.Contains(t, cfg.AllowedMethods, "GET")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 300, cfg.MaxAge)
}

func TestApplication_performStartupHealthCheck(t *testing.T) {
	app := newTestApplication(t)

	t.Run("passes with dataset present", func(t *testing.T) {
		assert.NoError(t, app.performStartupHealthCheck(context.Background()))
	})

	t.Run("warns when dataset missing", func(t *testing.T) {
		require.NoError(t, os.Remove(app.Config.Dataset.Path))
		err := app.performStartupHealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset not found")
	})
}

func TestGenerateBuildID(t *testing.T) {
	id := generateBuildID()
	assert.Len(t, id, 12)
}
