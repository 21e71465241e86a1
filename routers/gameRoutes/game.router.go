package gameRoutes

import (
	controllers "gamelearn/controllers/game"
	"gamelearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes sets up game submission routes
func SetupGameRoutes(app *fiber.App) {
	gameGroup := app.Group("/game")

	gameGroup.Post("/:sectionId/submit", middleware.JWTMiddleware, controllers.SubmitGame)
}
