package adminRoutes

import (
	adminControllers "academy/controllers/admin"
	"academy/middleware"
	adminValidators "academy/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes wires the admin review and content-management API.
func SetupAdminRoutes(app *fiber.App) {
	// Landing page settings are readable without a session
	app.Get("/api/site-settings", adminControllers.GetSiteSettings)

	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	// Access request review
	adminGroup.Get("/requests/pending", adminValidators.PendingList(), adminControllers.ListPendingRequests)
	adminGroup.Post("/requests/:id/decide", adminValidators.Decide(), adminControllers.DecideRequest)

	// Student accounts
	adminGroup.Get("/students", adminValidators.StudentList(), adminControllers.ListStudents)
	adminGroup.Post("/students/approve", adminValidators.ApproveStudent(), adminControllers.ApproveStudent)
	adminGroup.Get("/stats", adminControllers.Stats)

	// Content management
	adminGroup.Post("/unit", adminValidators.SaveUnit(), adminControllers.SaveUnit)
	adminGroup.Get("/units/overview", adminValidators.UnitsOverview(), adminControllers.UnitsOverview)
	adminGroup.Post("/site-settings", adminValidators.SaveSiteSettings(), adminControllers.SaveSiteSettings)
}
