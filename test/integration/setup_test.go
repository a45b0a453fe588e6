package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"adorder-be/internal/bootstrap"
	"adorder-be/internal/config"
	"adorder-be/internal/model"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/server"
	"adorder-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openDB connects to the Postgres named by DB_CONNECTION_STRING and migrates
// the schema. Tests skip when no database is configured.
func openDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err, "failed to connect to DB")
	require.NoError(t, db.AutoMigrate(model.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, cfg
}

// newApp wires the full container the way cmd/rest does.
func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, cfg := openDB(t)
	cfg.App.JWTSecret = "integration-secret"

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	container := bootstrap.NewContainer(ctx, db, cfg, logger.NewNopLogger())
	return server.New(cfg, container).GetApp(), db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, serverutils.BaseResponse[json.RawMessage]) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var res serverutils.BaseResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp.StatusCode, res
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, res := call(t, app, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(t, 200, status, res.Message)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	return data.AccessToken
}
