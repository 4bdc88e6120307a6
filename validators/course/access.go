package courseValidator

import (
	"academy/catalog"
	"academy/middleware"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AccessRequestPayload is the body of a module access request.
type AccessRequestPayload struct {
	Modules  []int  `json:"modules" validate:"required,min=1"`
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

// RequestAccess validates the access-request body. Any module id outside the
// offered catalog rejects the whole call.
func RequestAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AccessRequestPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		reqData.Email = strings.TrimSpace(reqData.Email)

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Modules":
					errors["modules"] = "At least one module must be selected!"
				case "FullName":
					errors["fullName"] = "Full name is required!"
				case "Email":
					errors["email"] = "A valid email is required!"
				}
			}
		}

		for _, id := range reqData.Modules {
			if !catalog.Default.IsValidModuleID(id) {
				errors["modules"] = fmt.Sprintf("Invalid module. Only modules 1-%d are available.", catalog.Default.Cap())
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAccessRequest", reqData)
		return c.Next()
	}
}

// ProgressPayload is the body of a progress update.
type ProgressPayload struct {
	ModuleID   int `json:"moduleId"`
	Percentage int `json:"percentage"`
}

func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !catalog.Default.IsValidModuleID(reqData.ModuleID) {
			errors["moduleId"] = fmt.Sprintf("Invalid module. Only modules 1-%d are available.", catalog.Default.Cap())
		}
		if reqData.Percentage < 0 || reqData.Percentage > 100 {
			errors["percentage"] = "Percentage must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// GetUnit validates the module/unit query of a unit fetch.
func GetUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleStr := strings.TrimSpace(c.Query("module"))
		unitID := strings.TrimSpace(c.Query("unit"))

		if moduleStr == "" || unitID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module and unit are required!", nil)
		}

		moduleID, err := strconv.Atoi(moduleStr)
		if err != nil || !catalog.Default.IsValidModuleID(moduleID) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module!", nil)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("unitID", unitID)
		return c.Next()
	}
}

// SendMessage validates a student contact message.
func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"message": "Message is required!"})
		}

		c.Locals("validatedMessage", reqData.Message)
		return c.Next()
	}
}
