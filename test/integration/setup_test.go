package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"milk-platform-be/internal/bootstrap"
	"milk-platform-be/internal/config"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/model"
	"milk-platform-be/internal/pkg/serverutils"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/internal/server"
	"milk-platform-be/internal/service"
	"milk-platform-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openDB connects to DB_CONNECTION_STRING and migrates, skipping the test when it is unset.
func openDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	cfg.App.NatsURL = ""
	cfg.App.RedisURL = ""
	cfg.App.LogFilePath = t.TempDir() + "/app.log"
	cfg.App.NotificationLogFilePath = t.TempDir() + "/notification.log"
	cfg.Auth.JwtSecret = "integration-secret"
	cfg.Auth.RateLimitPerMinute = 1000
	cfg.Payment.MidtransServerKey = ""
	return db, cfg
}

func newApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()
	db, cfg := openDB(t)

	container, err := bootstrap.NewContainer(db, cfg)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go container.WebSocketHub.Run(ctx)
	require.NoError(t, container.NotificationConsumer.Consume(ctx))

	return server.New(cfg, container).GetApp(), db, cfg
}

func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8] + "@example.com"
}

func seedAdmin(t *testing.T, db *gorm.DB, password string) string {
	t.Helper()
	hash, err := service.HashPassword(password)
	require.NoError(t, err)

	email := uniqueEmail("admin")
	now := time.Now()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), &entity.User{
		Id:           uuid.New(),
		Name:         "Integration Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	return email
}

type envelope = serverutils.Response[json.RawMessage]

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
