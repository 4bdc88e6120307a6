package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SendMessage stores a free-text message for the admins and notifies them.
func SendMessage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	body, ok := c.Locals("validatedMessage").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	message := models.Message{
		StudentID: user.ID,
		Body:      body,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error saving message from user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	go utils.SendStudentMessageEmail(user.FullName, user.Email, body)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message sent successfully!", nil)
}
