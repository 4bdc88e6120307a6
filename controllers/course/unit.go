package controllers

import (
	"academy/database"
	"academy/engine"
	"academy/middleware"
	"academy/models"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUnit returns one unit's content and video. Content is gated on the
// engine's effective status so it can never disagree with the dashboard.
func GetUnit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	unitID := c.Locals("unitID").(string)

	status, err := engine.Default.StatusFor(user.ID, uint(moduleID))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidModule) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module!", nil)
		}
		log.Printf("Error computing access for user %d module %d: %v", user.ID, moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load unit!", nil)
	}
	if status != models.AccessApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this module!", nil)
	}

	var unit models.Unit
	err = database.Database.Db.Where("module_id = ? AND unit_id = ?", moduleID, unitID).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Empty content is a valid state for a unit nobody edited yet
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit fetched successfully!", fiber.Map{
			"module":    moduleID,
			"unit":      unitID,
			"content":   "",
			"video_url": "",
		})
	}
	if err != nil {
		log.Printf("Error fetching unit %d/%s: %v", moduleID, unitID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit fetched successfully!", fiber.Map{
		"module":    unit.ModuleID,
		"unit":      unit.UnitID,
		"content":   unit.Content,
		"video_url": unit.VideoURL,
	})
}
