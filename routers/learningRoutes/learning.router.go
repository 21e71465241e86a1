package learningRoutes

import (
	controllers "gamelearn/controllers/learning"
	"gamelearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes sets up all student-facing learning routes
func SetupLearningRoutes(app *fiber.App) {
	learningGroup := app.Group("/learning")

	// Catalog traversal
	learningGroup.Get("/subjects", middleware.JWTMiddleware, controllers.GetSubjects)
	learningGroup.Get("/modules/:subjectId", middleware.JWTMiddleware, controllers.GetModules)
	learningGroup.Get("/sections/:moduleId", middleware.JWTMiddleware, controllers.GetSections)

	// Content completion
	learningGroup.Post("/section/:sectionId/complete", middleware.JWTMiddleware, controllers.MarkSectionComplete)

	// Dashboards
	learningGroup.Get("/stats", middleware.JWTMiddleware, controllers.GetStats)
	learningGroup.Get("/detailed-progress", middleware.JWTMiddleware, controllers.GetDetailedProgress)
	learningGroup.Get("/learning-path", middleware.JWTMiddleware, controllers.GetLearningPath)
	learningGroup.Get("/rewards", middleware.JWTMiddleware, controllers.GetRewards)
}
