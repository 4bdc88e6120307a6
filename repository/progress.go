package repository

import (
	"time"

	"academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepo wraps the per-module completion tracking queries.
type ProgressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Upsert writes the completion percentage for a pair in one statement.
// The status column is derived from the percentage.
func (r *ProgressRepo) Upsert(studentID, moduleID uint, percentage int) error {
	status := models.StatusForPercentage(percentage)
	row := models.Progress{
		StudentID:           studentID,
		ModuleID:            moduleID,
		ProgressStatus:      status,
		PercentageCompleted: percentage,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress_status":      status,
			"percentage_completed": percentage,
			"updated_at":           time.Now(),
		}),
	}).Create(&row).Error
}

// FindByStudent returns a student's progress rows keyed by module id.
func (r *ProgressRepo) FindByStudent(studentID uint) (map[uint]models.Progress, error) {
	var rows []models.Progress
	if err := r.db.Where("student_id = ?", studentID).Find(&rows).Error; err != nil {
		return nil, err
	}
	byModule := make(map[uint]models.Progress, len(rows))
	for _, row := range rows {
		byModule[row.ModuleID] = row
	}
	return byModule, nil
}
