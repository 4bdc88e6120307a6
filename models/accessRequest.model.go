package models

import "gorm.io/gorm"

// Access status enum values. not_requested is derived only, never stored.
const (
	AccessPending      = "pending"
	AccessApproved     = "approved"
	AccessDenied       = "denied"
	AccessNotRequested = "not_requested"
)

// AccessRequest tracks a student's request for one module. One row per
// (student, module) pair; all transitions overwrite the same row.
type AccessRequest struct {
	gorm.Model
	StudentID    uint   `json:"student_id" gorm:"uniqueIndex:idx_student_module;not null"`
	ModuleID     uint   `json:"module_id" gorm:"uniqueIndex:idx_student_module;not null"`
	Status       string `json:"status" gorm:"default:'pending'"` // pending, approved, denied
	AdminComment string `json:"admin_comment" gorm:"type:text"`

	User   User   `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Module Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
