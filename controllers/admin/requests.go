package adminController

import (
	"academy/catalog"
	"academy/database"
	"academy/engine"
	"academy/middleware"
	"academy/models"
	"academy/utils"
	adminValidators "academy/validators/admin"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListPendingRequests returns the review queue: pending requests joined with
// student and module display fields, newest first.
func ListPendingRequests(c *fiber.Ctx) error {
	limit, _ := c.Locals("pendingLimit").(int)

	rows, err := engine.Default.ListPending(limit)
	if err != nil {
		log.Printf("Error listing pending requests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched successfully!", fiber.Map{
		"requests": rows,
	})
}

// DecideRequest applies an approve/deny decision to one access request and
// notifies the student.
func DecideRequest(c *fiber.Ctx) error {
	requestID, ok := c.Locals("requestID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reqData, ok := c.Locals("validatedDecision").(*adminValidators.DecidePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	req, err := engine.Default.Decide(requestID, reqData.Action, reqData.Comment)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Access request not found!", nil)
		case errors.Is(err, engine.ErrInvalidModule):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module!", nil)
		case errors.Is(err, engine.ErrInvalidAction):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Action must be approve or deny!", nil)
		default:
			log.Printf("Error deciding request %d: %v", requestID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request. Please try again.", nil)
		}
	}

	// Notify the student off the critical path
	go func(req models.AccessRequest) {
		var student models.User
		if err := database.Database.Db.First(&student, req.StudentID).Error; err != nil {
			log.Printf("Error loading student %d for decision mail: %v", req.StudentID, err)
			return
		}
		module, ok := catalog.Default.Get(req.ModuleID)
		if !ok {
			return
		}
		utils.SendDecisionEmail(student.Email, student.FullName, module.ModuleName, req.Status, req.AdminComment)
	}(*req)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request updated successfully!", req)
}
