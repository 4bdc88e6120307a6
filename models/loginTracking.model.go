package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records each successful sign-in for auditing.
type LoginTracking struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
