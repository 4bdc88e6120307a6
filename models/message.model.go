package models

import "gorm.io/gorm"

// Message is a free-text note from a student to the admins.
type Message struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"index;not null"`
	Body      string `json:"body" gorm:"type:text;not null"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`

	User User `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}
