package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"gamelearn/database"
	"gamelearn/engine/games"
	"gamelearn/engine/progression"
	"gamelearn/middleware"
	"gamelearn/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitGame validates a game submission and advances progression on a pass
func SubmitGame(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil || sectionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
	}

	reqData := new(struct {
		Input json.RawMessage `json:"input"`
	})
	if err := c.BodyParser(reqData); err != nil || len(reqData.Input) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body: input is required!", nil)
	}

	engine := progression.New(database.Database.Db)
	engine.OnModuleCompleted = utils.NotifyModuleCompleted

	result, nextSectionID, err := engine.SubmitGame(userID, uint(sectionID), reqData.Input)
	if err != nil {
		switch {
		case errors.Is(err, progression.ErrSectionNotFound), errors.Is(err, progression.ErrInvalidSectionType):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Game section not found!", nil)
		case errors.Is(err, progression.ErrSectionLocked):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Section is locked or not started!", nil)
		case errors.Is(err, progression.ErrGameConfigMissing):
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Game configuration missing!", nil)
		case errors.Is(err, games.ErrUnsupportedGameType):
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Game type not supported!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit game result!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Game result submitted!", fiber.Map{
		"result":          result,
		"next_section_id": nextSectionID,
	})
}
