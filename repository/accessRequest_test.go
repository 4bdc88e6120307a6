package repository_test

import (
	"testing"

	"academy/database"
	"academy/models"
	"academy/repository"

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

func createStudent(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{FullName: "Student", Email: email, Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUpsertPendingCreatesAndUpdatesSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)
	student := createStudent(t, db, "a@example.com")

	require.NoError(t, repo.UpsertPending(student.ID, 2, true))
	require.NoError(t, repo.UpsertPending(student.ID, 2, true))

	var count int64
	require.NoError(t, db.Model(&models.AccessRequest{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	req, err := repo.FindByPair(student.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, req)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestUpsertPendingGuardsApprovedRows(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)
	student := createStudent(t, db, "b@example.com")

	require.NoError(t, repo.UpsertApproved(student.ID, 2))

	// Guarded: the approved row survives a re-request
	require.NoError(t, repo.UpsertPending(student.ID, 2, true))
	req, err := repo.FindByPair(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, req.Status)

	// Unguarded: the original overwrite behavior
	require.NoError(t, repo.UpsertPending(student.ID, 2, false))
	req, err = repo.FindByPair(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestUpsertPendingGuardStillReopensDenied(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)
	student := createStudent(t, db, "c@example.com")

	require.NoError(t, repo.UpsertPending(student.ID, 3, true))
	require.NoError(t, repo.UpdateDecision(mustFind(t, repo, student.ID, 3).ID, models.AccessDenied, "not yet"))

	require.NoError(t, repo.UpsertPending(student.ID, 3, true))
	req := mustFind(t, repo, student.ID, 3)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestFindByPairReturnsNilWhenMissing(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)

	req, err := repo.FindByPair(42, 2)
	require.NoError(t, err)
	require.Nil(t, req)
}

func TestUpdateDecisionMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)

	err := repo.UpdateDecision(9999, models.AccessApproved, "")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindByIDMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)

	_, err := repo.FindByID(9999)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPendingJoinsDisplayFields(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAccessRequestRepo(db)

	student := models.User{FullName: "Nora", Email: "nora@example.com", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, repo.UpsertPending(student.ID, 2, true))

	rows, err := repo.ListPending(10, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Nora", rows[0].StudentName)
	require.Equal(t, "nora@example.com", rows[0].StudentEmail)
	require.Equal(t, "Market Understanding & Property Strategy", rows[0].ModuleName)
	require.Equal(t, models.AccessPending, rows[0].Status)
}

func mustFind(t *testing.T, repo *repository.AccessRequestRepo, studentID, moduleID uint) *models.AccessRequest {
	t.Helper()

	req, err := repo.FindByPair(studentID, moduleID)
	require.NoError(t, err)
	require.NotNil(t, req)
	return req
}
