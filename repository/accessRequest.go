package repository

import (
	"errors"
	"time"

	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccessRequestRepo wraps every query the access-control engine needs over
// access_requests. All writes that can race (student double-submit vs admin
// decision) are single atomic upserts keyed on (student_id, module_id).
type AccessRequestRepo struct {
	db *gorm.DB
}

func NewAccessRequestRepo(db *gorm.DB) *AccessRequestRepo {
	return &AccessRequestRepo{db: db}
}

var pairConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "student_id"}, {Name: "module_id"}},
}

// FindByPair returns the request row for one (student, module) pair, or nil
// when the student never requested that module.
func (r *AccessRequestRepo) FindByPair(studentID, moduleID uint) (*models.AccessRequest, error) {
	var req models.AccessRequest
	err := r.db.Where("student_id = ? AND module_id = ?", studentID, moduleID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindByID returns a request row by primary key.
func (r *AccessRequestRepo) FindByID(id uint) (*models.AccessRequest, error) {
	var req models.AccessRequest
	err := r.db.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindByStudent returns all request rows for a student, keyed by module id.
func (r *AccessRequestRepo) FindByStudent(studentID uint) (map[uint]models.AccessRequest, error) {
	var reqs []models.AccessRequest
	if err := r.db.Where("student_id = ?", studentID).Find(&reqs).Error; err != nil {
		return nil, err
	}
	byModule := make(map[uint]models.AccessRequest, len(reqs))
	for _, req := range reqs {
		byModule[req.ModuleID] = req
	}
	return byModule, nil
}

// UpsertApproved writes status=approved for the pair, creating the row if
// needed. Safe to call repeatedly.
func (r *AccessRequestRepo) UpsertApproved(studentID, moduleID uint) error {
	conflict := pairConflict
	conflict.DoUpdates = clause.Assignments(map[string]interface{}{
		"status":     models.AccessApproved,
		"updated_at": time.Now(),
	})

	req := models.AccessRequest{StudentID: studentID, ModuleID: moduleID, Status: models.AccessApproved}
	return r.db.Clauses(conflict).Create(&req).Error
}

// UpsertPending writes status=pending for the pair. With protectApproved set
// the update is conditional so an already-approved row keeps its status; the
// guard runs inside the upsert, not as a separate read.
func (r *AccessRequestRepo) UpsertPending(studentID, moduleID uint, protectApproved bool) error {
	conflict := pairConflict
	conflict.DoUpdates = clause.Assignments(map[string]interface{}{
		"status":     models.AccessPending,
		"updated_at": time.Now(),
	})
	if protectApproved {
		conflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Neq{
				Column: clause.Column{Table: "access_requests", Name: "status"},
				Value:  models.AccessApproved,
			},
		}}
	}

	req := models.AccessRequest{StudentID: studentID, ModuleID: moduleID, Status: models.AccessPending}
	return r.db.Clauses(conflict).Create(&req).Error
}

// UpdateDecision overwrites status and comment on one row.
func (r *AccessRequestRepo) UpdateDecision(id uint, status, comment string) error {
	result := r.db.Model(&models.AccessRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"admin_comment": comment,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingRequest is one row of the admin review queue.
type PendingRequest struct {
	ID           uint      `json:"id"`
	StudentID    uint      `json:"student_id"`
	ModuleID     uint      `json:"module_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	ModuleName   string    `json:"module_name"`
}

// ListPending returns pending requests for offered modules, newest first.
func (r *AccessRequestRepo) ListPending(limit, moduleCap int) ([]PendingRequest, error) {
	var rows []PendingRequest
	err := r.db.Table("access_requests").
		Select("access_requests.id, access_requests.student_id, access_requests.module_id, access_requests.status, access_requests.created_at, users.full_name AS student_name, users.email AS student_email, modules.module_name").
		Joins("JOIN users ON users.id = access_requests.student_id").
		Joins("JOIN modules ON modules.id = access_requests.module_id").
		Where("access_requests.status = ? AND access_requests.module_id <= ?", models.AccessPending, moduleCap).
		Order("access_requests.created_at desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CountPending counts pending requests for offered modules.
func (r *AccessRequestRepo) CountPending(moduleCap int) (int64, error) {
	var total int64
	err := r.db.Model(&models.AccessRequest{}).
		Where("status = ? AND module_id <= ?", models.AccessPending, moduleCap).
		Count(&total).Error
	return total, err
}
