package engine_test

import (
	"testing"
	"time"

	"academy/catalog"
	"academy/database"
	"academy/engine"
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

func newTestEngine(t *testing.T, db *gorm.DB, allowRerequestApproved bool) (*engine.Engine, *catalog.Catalog) {
	t.Helper()

	cat, err := catalog.Load(db, 7, 1)
	require.NoError(t, err)
	return engine.New(db, cat, allowRerequestApproved), cat
}

func createStudent(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{FullName: name, Email: email, Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func requestFor(t *testing.T, db *gorm.DB, studentID, moduleID uint) models.AccessRequest {
	t.Helper()

	var req models.AccessRequest
	require.NoError(t, db.Where("student_id = ? AND module_id = ?", studentID, moduleID).First(&req).Error)
	return req
}

func TestEffectiveStatusOpenModuleAutoGranted(t *testing.T) {
	db := newTestDB(t)
	// A second open module alongside the free one
	require.NoError(t, db.Model(&models.Module{}).Where("id = ?", 2).
		Update("access_type", models.AccessTypeOpen).Error)

	eng, cat := newTestEngine(t, db, false)

	m2, ok := cat.Get(2)
	require.True(t, ok)
	require.Equal(t, models.AccessApproved, eng.EffectiveStatus(m2, nil))
}

func TestEffectiveStatusRequiresApprovalDefaultsToNotRequested(t *testing.T) {
	db := newTestDB(t)
	eng, cat := newTestEngine(t, db, false)

	for _, id := range []uint{2, 3, 4, 5, 6, 7} {
		m, ok := cat.Get(id)
		require.True(t, ok)
		require.Equal(t, models.AccessNotRequested, eng.EffectiveStatus(m, nil))
	}
}

func TestEffectiveStatusFreeModuleNeedsExplicitUnlock(t *testing.T) {
	db := newTestDB(t)
	eng, cat := newTestEngine(t, db, false)

	free, ok := cat.Get(cat.FreeModuleID())
	require.True(t, ok)
	require.Equal(t, models.AccessTypeOpen, free.AccessType)
	// Open, but not silently granted
	require.Equal(t, models.AccessNotRequested, eng.EffectiveStatus(free, nil))
}

func TestEffectiveStatusExplicitRowOverridesOpenModule(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Model(&models.Module{}).Where("id = ?", 2).
		Update("access_type", models.AccessTypeOpen).Error)

	eng, cat := newTestEngine(t, db, false)
	student := createStudent(t, db, "Dana", "dana@example.com")

	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 2, Status: models.AccessDenied,
	}).Error)

	m2, _ := cat.Get(2)
	req := requestFor(t, db, student.ID, 2)
	require.Equal(t, models.AccessDenied, eng.EffectiveStatus(m2, &req))
}

func TestUnlockFreeModuleIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	eng, cat := newTestEngine(t, db, false)
	student := createStudent(t, db, "Alice", "alice@example.com")

	require.NoError(t, eng.UnlockFreeModule(student.ID))
	status, err := eng.StatusFor(student.ID, cat.FreeModuleID())
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, status)

	// Second unlock ends in the same state with a single row
	require.NoError(t, eng.UnlockFreeModule(student.ID))
	status, err = eng.StatusFor(student.ID, cat.FreeModuleID())
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, status)

	var count int64
	require.NoError(t, db.Model(&models.AccessRequest{}).
		Where("student_id = ?", student.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRequestAccessRejectsOutOfRangeIDsEntirely(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Bob", "bob@example.com")

	for _, ids := range [][]int{{0}, {8}, {2, 8}, {0, 3}} {
		err := eng.RequestAccess(student.ID, ids)
		require.ErrorIs(t, err, engine.ErrInvalidModule)
	}
	require.ErrorIs(t, eng.RequestAccess(student.ID, nil), engine.ErrNoModules)

	// No partial application
	var count int64
	require.NoError(t, db.Model(&models.AccessRequest{}).
		Where("student_id = ?", student.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestRequestAccessCreatesPendingRows(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Carol", "carol@example.com")

	require.NoError(t, eng.RequestAccess(student.ID, []int{2, 3}))

	for _, moduleID := range []uint{2, 3} {
		req := requestFor(t, db, student.ID, moduleID)
		require.Equal(t, models.AccessPending, req.Status)
	}
}

func TestRequestAccessReopensDeniedRequest(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Dave", "dave@example.com")

	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 4, Status: models.AccessDenied,
	}).Error)

	require.NoError(t, eng.RequestAccess(student.ID, []int{4}))
	req := requestFor(t, db, student.ID, 4)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestRequestAccessKeepsApprovedStatusByDefault(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Erin", "erin@example.com")

	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 5, Status: models.AccessApproved,
	}).Error)

	require.NoError(t, eng.RequestAccess(student.ID, []int{5}))
	req := requestFor(t, db, student.ID, 5)
	require.Equal(t, models.AccessApproved, req.Status)
}

func TestRequestAccessResetsApprovedWhenConfigured(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, true)
	student := createStudent(t, db, "Frank", "frank@example.com")

	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 5, Status: models.AccessApproved,
	}).Error)

	require.NoError(t, eng.RequestAccess(student.ID, []int{5}))
	req := requestFor(t, db, student.ID, 5)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestDecideOverwritesStatus(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Grace", "grace@example.com")

	require.NoError(t, eng.RequestAccess(student.ID, []int{2}))
	row := requestFor(t, db, student.ID, 2)

	decided, err := eng.Decide(row.ID, engine.ActionApprove, "welcome")
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, decided.Status)

	status, err := eng.StatusFor(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, status)

	// A later deny replaces the approval outright
	decided, err = eng.Decide(row.ID, engine.ActionDeny, "revoked")
	require.NoError(t, err)
	require.Equal(t, models.AccessDenied, decided.Status)
	require.Equal(t, "revoked", decided.AdminComment)

	status, err = eng.StatusFor(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessDenied, status)
}

func TestDecideMissingRequestFailsWithoutWrite(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)

	_, err := eng.Decide(9999, engine.ActionApprove, "")
	require.ErrorIs(t, err, engine.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.AccessRequest{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)

	_, err := eng.Decide(1, "escalate", "")
	require.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestDecideRejectsModuleBeyondCap(t *testing.T) {
	db := newTestDB(t)
	// A leftover row for a module this deployment does not offer
	require.NoError(t, db.Create(&models.Module{
		ID: 9, ModuleName: "Retired Module", AccessType: models.AccessTypeRequiresApproval,
	}).Error)

	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Henry", "henry@example.com")

	stray := models.AccessRequest{StudentID: student.ID, ModuleID: 9, Status: models.AccessPending}
	require.NoError(t, db.Create(&stray).Error)

	_, err := eng.Decide(stray.ID, engine.ActionApprove, "")
	require.ErrorIs(t, err, engine.ErrInvalidModule)

	req := requestFor(t, db, student.ID, 9)
	require.Equal(t, models.AccessPending, req.Status)
}

func TestListPendingOrdersAndLimits(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)

	s1 := createStudent(t, db, "Iris", "iris@example.com")
	s2 := createStudent(t, db, "Jack", "jack@example.com")

	base := time.Now().Add(-time.Hour)
	var n int
	for _, studentID := range []uint{s1.ID, s2.ID} {
		for moduleID := uint(2); moduleID <= 7; moduleID++ {
			n++
			require.NoError(t, db.Create(&models.AccessRequest{
				Model:     gorm.Model{CreatedAt: base.Add(time.Duration(n) * time.Minute)},
				StudentID: studentID,
				ModuleID:  moduleID,
				Status:    models.AccessPending,
			}).Error)
		}
	}

	// Default and cap page size is 10
	rows, err := eng.ListPending(0)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for i := 1; i < len(rows); i++ {
		require.False(t, rows[i-1].CreatedAt.Before(rows[i].CreatedAt))
	}
	require.Equal(t, "Jack", rows[0].StudentName)
	require.Equal(t, "jack@example.com", rows[0].StudentEmail)
	require.NotEmpty(t, rows[0].ModuleName)

	rows, err = eng.ListPending(25)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	rows, err = eng.ListPending(3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestListPendingExcludesModulesBeyondCap(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Module{
		ID: 9, ModuleName: "Retired Module", AccessType: models.AccessTypeRequiresApproval,
	}).Error)

	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Kate", "kate@example.com")

	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 9, Status: models.AccessPending,
	}).Error)
	require.NoError(t, db.Create(&models.AccessRequest{
		StudentID: student.ID, ModuleID: 3, Status: models.AccessPending,
	}).Error)

	rows, err := eng.ListPending(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.EqualValues(t, 3, rows[0].ModuleID)
}

func TestRequestLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	eng, _ := newTestEngine(t, db, false)
	student := createStudent(t, db, "Sam", "sam@example.com")

	status, err := eng.StatusFor(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessNotRequested, status)

	require.NoError(t, eng.RequestAccess(student.ID, []int{2}))
	row := requestFor(t, db, student.ID, 2)
	require.Equal(t, models.AccessPending, row.Status)

	_, err = eng.Decide(row.ID, engine.ActionApprove, "")
	require.NoError(t, err)

	status, err = eng.StatusFor(student.ID, 2)
	require.NoError(t, err)
	require.Equal(t, models.AccessApproved, status)
}

func TestDashboardModules(t *testing.T) {
	db := newTestDB(t)
	eng, cat := newTestEngine(t, db, false)
	student := createStudent(t, db, "Tess", "tess@example.com")

	require.NoError(t, eng.UnlockFreeModule(student.ID))
	require.NoError(t, eng.RequestAccess(student.ID, []int{3}))

	progress := repository.NewProgressRepo(db)
	require.NoError(t, progress.Upsert(student.ID, cat.FreeModuleID(), 40))

	modules, err := eng.DashboardModules(student.ID)
	require.NoError(t, err)
	require.Len(t, modules, 7)

	byID := make(map[uint]engine.ModuleStatus, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}

	require.Equal(t, models.AccessApproved, byID[1].AccessStatus)
	require.Equal(t, models.ProgressInProgress, byID[1].ProgressStatus)
	require.Equal(t, 40, byID[1].PercentageCompleted)

	require.Equal(t, models.AccessPending, byID[3].AccessStatus)
	require.Equal(t, models.AccessNotRequested, byID[2].AccessStatus)
	require.Equal(t, "", byID[2].ProgressStatus)
}
