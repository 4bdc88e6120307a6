package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	FullName            string     `json:"full_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Phone               string     `json:"phone" gorm:"default:''"`
	Role                string     `json:"role" gorm:"default:'student'"` // student, admin
	Password            string     `json:"-"`
	GmailUID            string     `json:"-" gorm:"index;default:''"` // Set for Google sign-ins
	Approved            bool       `json:"approved" gorm:"default:false"`
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `json:"-" gorm:"default:false"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
