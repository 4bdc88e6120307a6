package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/repository"
	courseValidators "academy/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SaveProgress records how far the caller is through one module.
func SaveProgress(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*courseValidators.ProgressPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	progress := repository.NewProgressRepo(database.Database.Db)
	if err := progress.Upsert(user.ID, uint(reqData.ModuleID), reqData.Percentage); err != nil {
		log.Printf("Error saving progress for user %d module %d: %v", user.ID, reqData.ModuleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", nil)
}
