package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDatabaseErrorsBecomeServerErrors(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "menus"`).WillReturnError(errors.New("connection reset"))

	svc := &services.MenuService{DB: db, Log: zap.NewNop()}
	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.True(t, types.IsType(err, types.ServerError))

	var ce *types.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Server error", ce.Message)
	assert.NotContains(t, ce.Message, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedInsertRemovesSavedFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&models.Gallery{}))
	svc := &services.GalleryService{DB: f.db, Media: f.media, Log: zap.NewNop()}

	_, err := svc.Create(context.Background(), images(t, "a.png"))
	assert.True(t, types.IsType(err, types.ServerError))
	assert.Equal(t, 0, countFiles(t, f.fs, storage.KindGallery))
}
