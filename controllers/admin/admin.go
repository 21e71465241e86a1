package controllers

import (
	"strconv"

	"gamelearn/database"
	"gamelearn/middleware"
	"gamelearn/models"
	learningModels "gamelearn/models/learning"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists all users
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_deleted = ?", false).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// GetSystemStats returns platform-wide counters
func GetSystemStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var userCount, subjectCount, moduleCount, completedGamesCount int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&userCount)
	db.Model(&learningModels.Subject{}).Where("is_active = ?", true).Count(&subjectCount)
	db.Model(&learningModels.Module{}).Where("is_active = ?", true).Count(&moduleCount)
	db.Model(&learningModels.Progress{}).
		Where("status = ? AND attempts > ?", learningModels.StatusCompleted, 0).
		Count(&completedGamesCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "System stats fetched successfully!", fiber.Map{
		"users":        userCount,
		"subjects":     subjectCount,
		"modules":      moduleCount,
		"games_played": completedGamesCount,
	})
}

// SetSubjectStatus enables or disables a subject. Subjects are soft
// disabled, never hard deleted.
func SetSubjectStatus(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil || subjectID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject ID!", nil)
	}

	reqData := new(struct {
		IsActive bool `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var subject learningModels.Subject
	if err := database.Database.Db.First(&subject, subjectID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	subject.IsActive = reqData.IsActive
	if err := database.Database.Db.Save(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subject!", nil)
	}

	message := "Subject disabled"
	if subject.IsActive {
		message = "Subject enabled"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, subject)
}

// SetModuleStatus enables or disables a module
func SetModuleStatus(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
	}

	reqData := new(struct {
		IsActive bool `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var module learningModels.Module
	if err := database.Database.Db.First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsActive = reqData.IsActive
	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	message := "Module disabled"
	if module.IsActive {
		message = "Module enabled"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, module)
}
