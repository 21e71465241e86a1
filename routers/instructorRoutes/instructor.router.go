package instructorRoutes

import (
	controllers "gamelearn/controllers/instructor"
	"gamelearn/middleware"
	validators "gamelearn/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up content authoring routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR"))

	instructorGroup.Post("/subjects", validators.CreateSubject(), controllers.CreateSubject)
	instructorGroup.Post("/modules", validators.CreateModule(), controllers.CreateModule)
	instructorGroup.Post("/sections", validators.CreateSection(), controllers.CreateSection)
	instructorGroup.Put("/sections/:id", validators.UpdateSection(), controllers.UpdateSection)
}
