package catalog_test

import (
	"testing"

	"academy/catalog"
	"academy/database"
	"academy/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func TestLoadReturnsOrderedCatalog(t *testing.T) {
	db := newTestDB(t)

	cat, err := catalog.Load(db, 7, 1)
	require.NoError(t, err)

	modules := cat.Modules()
	require.Len(t, modules, 7)
	for i, m := range modules {
		require.EqualValues(t, i+1, m.ID)
	}
	require.Equal(t, models.AccessTypeOpen, modules[0].AccessType)
	require.EqualValues(t, 1, cat.FreeModuleID())
}

func TestLoadExcludesModulesBeyondCap(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Module{
		ID: 9, ModuleName: "Retired Module", AccessType: models.AccessTypeOpen,
	}).Error)

	cat, err := catalog.Load(db, 7, 1)
	require.NoError(t, err)

	require.Len(t, cat.Modules(), 7)
	_, ok := cat.Get(9)
	require.False(t, ok)
	require.False(t, cat.IsValidModuleID(9))
}

func TestIsValidModuleID(t *testing.T) {
	db := newTestDB(t)

	cat, err := catalog.Load(db, 7, 1)
	require.NoError(t, err)

	for id := 1; id <= 7; id++ {
		require.True(t, cat.IsValidModuleID(id), "module %d should be offered", id)
	}
	for _, id := range []int{-1, 0, 8, 100} {
		require.False(t, cat.IsValidModuleID(id), "module %d should be rejected", id)
	}
}
