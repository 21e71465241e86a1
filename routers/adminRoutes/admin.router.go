package adminRoutes

import (
	controllers "gamelearn/controllers/admin"
	"gamelearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up administration routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/users", controllers.GetUsers)
	adminGroup.Get("/stats", controllers.GetSystemStats)
	adminGroup.Patch("/subjects/:id/status", controllers.SetSubjectStatus)
	adminGroup.Patch("/modules/:id/status", controllers.SetModuleStatus)
}
