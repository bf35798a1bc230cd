package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestValidateFSRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"m/create_things.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(fsys, "m"))

	fsys = fstest.MapFS{
		"m/20260101000000_a.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n")},
	}
	assert.Error(t, ValidateFS(fsys, "m"))

	fsys = fstest.MapFS{
		"m/20260101000000_a.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(fsys, "m"))
}

func TestDialect(t *testing.T) {
	got, err := Dialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", got)

	got, err = Dialect("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", got)

	_, err = Dialect("mssql")
	assert.Error(t, err)
}

func TestRunEmbeddedCreatesCatalogTables(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, RunEmbedded(context.Background(), sqlDB, "sqlite", "up"))

	assert.True(t, conn.Migrator().HasTable("catalog_products"))
	assert.True(t, conn.Migrator().HasTable("catalog_product_images"))
}
