package controllers

import (
	"academy/engine"
	"academy/middleware"
	"academy/utils"
	courseValidators "academy/validators/course"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// UnlockFreeModule grants the designated free module to the caller.
// Idempotent: pressing the button twice is safe.
func UnlockFreeModule(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := engine.Default.UnlockFreeModule(user.ID); err != nil {
		log.Printf("Error unlocking free module for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock module. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module unlocked successfully!", nil)
}

// RequestAccess upserts a pending request for each selected module and
// notifies the admins. The notification never fails the request itself.
func RequestAccess(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAccessRequest").(*courseValidators.AccessRequestPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := engine.Default.RequestAccess(user.ID, reqData.Modules); err != nil {
		switch {
		case errors.Is(err, engine.ErrNoModules), errors.Is(err, engine.ErrInvalidModule):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module selection!", nil)
		default:
			log.Printf("Error saving access request for user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit request. Please try again.", nil)
		}
	}

	go utils.SendAccessRequestEmail(reqData.FullName, reqData.Email, reqData.Phone, reqData.Modules, reqData.Message)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access request submitted successfully!", nil)
}
