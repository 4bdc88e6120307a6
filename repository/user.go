package repository

import (
	"errors"

	"academy/models"

	"gorm.io/gorm"
)

// UserRepo wraps the user lookups shared by the session layer and admin
// surfaces.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindByID returns an active user by primary key.
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns an active user by email.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListStudents returns non-admin users, newest first. With pendingOnly set,
// only accounts that still await approval.
func (r *UserRepo) ListStudents(pendingOnly bool) ([]models.User, error) {
	q := r.db.Where("role <> ? AND is_deleted = ?", models.RoleAdmin, false).Order("created_at desc")
	if pendingOnly {
		q = q.Where("approved = ?", false)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, err
}

// Approve flips the account-level approval flag. Admin accounts are never
// touched, matching the original behavior.
func (r *UserRepo) Approve(id uint, email string) (int64, error) {
	q := r.db.Model(&models.User{}).Where("role <> ?", models.RoleAdmin)
	if id > 0 {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("email = ?", email)
	}
	result := q.Update("approved", true)
	return result.RowsAffected, result.Error
}
