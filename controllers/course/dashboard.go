package controllers

import (
	"academy/engine"
	"academy/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the signed-in student's view of the catalog: every
// offered module with access status, access type and progress.
func Dashboard(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	modules, err := engine.Default.DashboardModules(user.ID)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"approved":  user.Approved,
		},
		"modules": modules,
	})
}
