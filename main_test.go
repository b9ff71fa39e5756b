package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bizprofile/internal/app"
	"bizprofile/internal/config"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestServerStartupAndHealthCheck(t *testing.T) {
	open := func(name string) *gorm.DB {
		db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		return db
	}
	primary := open("main_primary")
	profiles := open("main_profiles")
	require.NoError(t, app.Migrate(primary, profiles))

	cfg := config.Config{
		JWTSecret:         "test_jwt_secret",
		SessionCookieName: "sid",
		SessionTTL:        time.Hour,
		SessionSameSite:   "Strict",
	}
	fiberApp, err := app.New(app.NewDeps(cfg, primary, profiles, app.Externals{}))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = fiberApp.Listener(ln)
	}()
	defer func() {
		assert.NoError(t, fiberApp.Shutdown())
		closeDatabase(primary)
		closeDatabase(profiles)
	}()

	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())
	client := &http.Client{Timeout: 5 * time.Second}

	// --- Test Health Endpoint ---
	t.Run("HealthCheck", func(t *testing.T) {
		resp, err := client.Get(baseURL + "/api/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "Hello world!", string(body))
	})

	// --- Test Unauthenticated Access ---
	t.Run("UnauthenticatedAccess", func(t *testing.T) {
		resp, err := client.Post(baseURL+"/api/dashboard", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
