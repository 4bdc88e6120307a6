package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/repository"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ListStudents returns non-admin accounts, optionally only those still
// awaiting account approval.
func ListStudents(c *fiber.Ctx) error {
	status, _ := c.Locals("studentStatus").(string)

	users := repository.NewUserRepo(database.Database.Db)
	students, err := users.ListStudents(status == "pending")
	if err != nil {
		log.Printf("Error listing students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
	})
}

// ApproveStudent flips the account-level approval flag by id or email.
// Admin accounts are never modified.
func ApproveStudent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedApproval").(*struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	users := repository.NewUserRepo(database.Database.Db)
	affected, err := users.Approve(reqData.ID, reqData.Email)
	if err != nil {
		log.Printf("Error approving student: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve student!", nil)
	}
	if affected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if reqData.ID > 0 {
		middleware.InvalidateUser(reqData.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student approved successfully!", nil)
}

// Stats returns account counts plus registrations this week and this month.
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db

	studentScope := func() *gorm.DB {
		return db.Model(&models.User{}).Where("role <> ? AND is_deleted = ?", models.RoleAdmin, false)
	}

	var total, approved, pending, thisWeek, thisMonth int64

	if err := studentScope().Count(&total).Error; err != nil {
		log.Printf("Error counting students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	studentScope().Where("approved = ?", true).Count(&approved)
	studentScope().Where("approved = ?", false).Count(&pending)
	studentScope().Where("created_at >= ?", now.BeginningOfWeek()).Count(&thisWeek)
	studentScope().Where("created_at >= ?", now.BeginningOfMonth()).Count(&thisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total":      total,
		"approved":   approved,
		"pending":    pending,
		"this_week":  thisWeek,
		"this_month": thisMonth,
	})
}
