package database_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/localnerve/singletea-api/internal/config"
	"github.com/localnerve/singletea-api/internal/database"
	"github.com/localnerve/singletea-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestDialector(t *testing.T) {
	for _, typ := range []string{"mysql", "mariadb", "postgres", "sqlite", "sqlserver", "mssql"} {
		d, err := database.Dialector(typ, "dsn")
		require.NoError(t, err, typ)
		assert.NotNil(t, d)
	}
	_, err := database.Dialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestConnectSQLiteFile(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Type:            "sqlite",
		DSN:             filepath.Join(t.TempDir(), "test.db"),
		ConnectionLimit: 1,
	}}
	db, err := database.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	for _, table := range []string{"users", "menus", "franchises", "galleries", "franchise_galleries"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

// TestWithPostgres runs migrations and a JSON column round trip against a real Postgres container
func TestWithPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "singletea",
				"POSTGRES_PASSWORD": "singletea",
				"POSTGRES_DB":       "singletea",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Postgres container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{Database: config.DatabaseConfig{
		Type:            "postgres",
		DSN:             fmt.Sprintf("host=%s port=%s user=singletea password=singletea dbname=singletea sslmode=disable", host, port.Port()),
		ConnectionLimit: 5,
	}}
	db, err := database.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.AutoMigrate(db))

	franchise := models.Franchise{
		Title:     "Nashik",
		Contents:  models.JSONList[models.Section]{{Heading: "Hours", Content: "7am to 11pm"}},
		ImagesURL: models.JSONList[string]{"http://api.test/upload/franchise/1-a.png"},
	}
	require.NoError(t, db.Create(&franchise).Error)

	var got models.Franchise
	require.NoError(t, db.First(&got, "id = ?", franchise.ID).Error)
	assert.Equal(t, franchise.Contents, got.Contents)
	assert.Equal(t, franchise.ImagesURL, got.ImagesURL)

	user := models.User{Email: "dup@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	dup := models.User{Email: "dup@example.com", PasswordHash: "y"}
	assert.Error(t, db.Create(&dup).Error)
}
