package app

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bizprofile/internal/config"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func memoryDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func baseConfig() config.Config {
	return config.Config{
		JWTSecret:         "secret",
		SessionCookieName: "sid",
		SessionTTL:        time.Hour,
		SessionSameSite:   "Lax",
	}
}

func TestSessionKey(t *testing.T) {
	generated, err := sessionKey("")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(generated)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	valid := base64.StdEncoding.EncodeToString(make([]byte, 16))
	got, err := sessionKey(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, got)

	_, err = sessionKey("not base64!")
	assert.Error(t, err)

	_, err = sessionKey(base64.StdEncoding.EncodeToString(make([]byte, 10)))
	assert.Error(t, err)
}

func TestNewRejectsBadSessionKey(t *testing.T) {
	cfg := baseConfig()
	cfg.SessionKey = "short"
	deps := NewDeps(cfg, memoryDB(t, "primary"), memoryDB(t, "profiles"), Externals{})
	_, err := New(deps)
	assert.Error(t, err)
}

func TestMigrateCreatesTables(t *testing.T) {
	primary := memoryDB(t, "primary")
	profiles := memoryDB(t, "profiles")
	require.NoError(t, Migrate(primary, profiles))

	for _, table := range []string{"users", "sessions", "customers", "deals", "orders"} {
		assert.True(t, primary.Migrator().HasTable(table), table)
	}
	assert.True(t, profiles.Migrator().HasTable("users"))
	assert.True(t, profiles.Migrator().HasColumn("users", "qr_code"))
	assert.False(t, profiles.Migrator().HasTable("customers"))
}

func TestMetricsAndNotFound(t *testing.T) {
	primary := memoryDB(t, "primary")
	profiles := memoryDB(t, "profiles")
	require.NoError(t, Migrate(primary, profiles))
	fiberApp, err := New(NewDeps(baseConfig(), primary, profiles, Externals{}))
	require.NoError(t, err)

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bizprofile_http_requests_total{method="GET",route="/api/health",status="200"} 1`)

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStaticFrontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>card</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := baseConfig()
	cfg.StaticDir = dir
	fiberApp, err := New(NewDeps(cfg, memoryDB(t, "primary"), memoryDB(t, "profiles"), Externals{}))
	require.NoError(t, err)

	for path, want := range map[string]string{
		"/app.js":          "console.log(1)",
		"/jane.doe.abc12":  "<html>card</html>",
		"/dashboard/deals": "<html>card</html>",
	} {
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), want), path)
	}

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
