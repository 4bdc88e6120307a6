package models

import "gorm.io/gorm"

// Progress status enum values
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Progress tracks how far a student is through one module's content.
// Independent of access: a row here says nothing about permission.
type Progress struct {
	gorm.Model
	StudentID           uint   `json:"student_id" gorm:"uniqueIndex:idx_progress_student_module;not null"`
	ModuleID            uint   `json:"module_id" gorm:"uniqueIndex:idx_progress_student_module;not null"`
	ProgressStatus      string `json:"progress_status" gorm:"default:'not_started'"`
	PercentageCompleted int    `json:"percentage_completed" gorm:"default:0"` // 0-100
}

// StatusForPercentage derives the progress status from a completion percentage.
func StatusForPercentage(percentage int) string {
	switch {
	case percentage <= 0:
		return ProgressNotStarted
	case percentage >= 100:
		return ProgressCompleted
	default:
		return ProgressInProgress
	}
}
