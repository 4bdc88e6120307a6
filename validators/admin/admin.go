package adminValidator

import (
	"academy/catalog"
	"academy/engine"
	"academy/middleware"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DecidePayload is the body of an admin decision on one access request.
type DecidePayload struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

// Decide validates the request id param and the approve/deny body.
func Decide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		requestID, err := strconv.Atoi(idStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
		}

		reqData := new(DecidePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Action != engine.ActionApprove && reqData.Action != engine.ActionDeny {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"action": "Action must be approve or deny!",
			})
		}

		c.Locals("requestID", uint(requestID))
		c.Locals("validatedDecision", reqData)
		return c.Next()
	}
}

// PendingList validates the optional limit query.
func PendingList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Limit must be a positive number!", nil)
			}
			limit = parsed
		}

		c.Locals("pendingLimit", limit)
		return c.Next()
	}
}

// ApproveStudent validates the id-or-email body of an account approval.
func ApproveStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(reqData.Email)
		if reqData.ID == 0 && reqData.Email == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"id": "Student id or email is required!",
			})
		}

		c.Locals("validatedApproval", reqData)
		return c.Next()
	}
}

// StudentList validates the status filter query.
func StudentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status", "all")
		if status != "all" && status != "pending" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be all or pending!", nil)
		}

		c.Locals("studentStatus", status)
		return c.Next()
	}
}

// UnitPayload is the body of an admin unit save. Nil fields are left
// untouched in the database.
type UnitPayload struct {
	Module   int     `json:"module"`
	Unit     string  `json:"unit"`
	Content  *string `json:"content"`
	VideoURL *string `json:"video_url"`
}

func SaveUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UnitPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Unit = strings.TrimSpace(reqData.Unit)

		errors := make(map[string]string)
		if !catalog.Default.IsValidModuleID(reqData.Module) {
			errors["module"] = fmt.Sprintf("Invalid module. Only modules 1-%d are available.", catalog.Default.Cap())
		}
		if reqData.Unit == "" {
			errors["unit"] = "Unit is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUnit", reqData)
		return c.Next()
	}
}

// UnitsOverview validates the module query of the units overview.
func UnitsOverview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleStr := strings.TrimSpace(c.Query("module"))
		moduleID, err := strconv.Atoi(moduleStr)
		if err != nil || !catalog.Default.IsValidModuleID(moduleID) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// SiteSettingsPayload is the body of the admin site-settings save. Nil
// fields keep their stored values.
type SiteSettingsPayload struct {
	HeroVideo   *string `json:"heroVideo"`
	Video2      *string `json:"video2"`
	HomeContent *string `json:"homeUnitContent"`
}

func SaveSiteSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SiteSettingsPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedSiteSettings", reqData)
		return c.Next()
	}
}
