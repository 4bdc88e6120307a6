package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the student-facing API.
func SetupCourseRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	apiGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.Dashboard)
	apiGroup.Post("/module/free/unlock", middleware.JWTMiddleware, controllers.UnlockFreeModule)
	apiGroup.Post("/access-request", middleware.JWTMiddleware, validators.RequestAccess(), controllers.RequestAccess)
	apiGroup.Post("/progress", middleware.JWTMiddleware, validators.SaveProgress(), controllers.SaveProgress)
	apiGroup.Get("/unit", middleware.JWTMiddleware, validators.GetUnit(), controllers.GetUnit)
	apiGroup.Post("/message", middleware.JWTMiddleware, validators.SendMessage(), controllers.SendMessage)
}
