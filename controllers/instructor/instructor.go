package controllers

import (
	"strconv"

	"gamelearn/database"
	"gamelearn/middleware"
	learningModels "gamelearn/models/learning"
	instructorValidators "gamelearn/validators/instructor"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateSubject creates a new top-level subject
func CreateSubject(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubject").(*instructorValidators.SubjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("title = ?", reqData.Title).First(&learningModels.Subject{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A subject with this title already exists!", nil)
	}

	subject := learningModels.Subject{
		Title:       reqData.Title,
		Description: reqData.Description,
		IsActive:    true,
	}
	if reqData.Image != "" {
		subject.Image = reqData.Image
	}

	if err := db.Create(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully!", subject)
}

// CreateModule creates a module within a subject. A duplicate order
// within the subject is rejected: the unlock chain is computed from
// order, so two modules claiming the same slot would make traversal
// nondeterministic.
func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*instructorValidators.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var subject learningModels.Subject
	if err := db.First(&subject, reqData.SubjectID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	var existing learningModels.Module
	if err := db.Where("subject_id = ? AND order_index = ?", reqData.SubjectID, reqData.OrderIndex).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A module with this order already exists in the subject!", nil)
	}

	module := learningModels.Module{
		SubjectID:  reqData.SubjectID,
		Title:      reqData.Title,
		OrderIndex: reqData.OrderIndex,
		IsActive:   true,
	}

	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// CreateSection creates a section; for GAME sections the game
// configuration is created alongside it. Duplicate order within the
// module is rejected for the same reason as modules.
func CreateSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSection").(*instructorValidators.SectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module learningModels.Module
	if err := db.First(&module, reqData.ModuleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var existing learningModels.Section
	if err := db.Where("module_id = ? AND order_index = ?", reqData.ModuleID, reqData.OrderIndex).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A section with this order already exists in the module!", nil)
	}

	section := learningModels.Section{
		ModuleID:   reqData.ModuleID,
		Type:       reqData.Type,
		OrderIndex: reqData.OrderIndex,
		Title:      reqData.Title,
	}

	if reqData.Type == learningModels.SectionContent {
		section.ContentRef = datatypes.JSON(reqData.ContentRef)
	} else {
		game := learningModels.Game{
			GameType:     reqData.GameType,
			Title:        reqData.Title + " Game",
			Rules:        datatypes.JSON(reqData.GameRules),
			MaxScore:     reqData.MaxScore,
			PassingScore: reqData.PassingScore,
		}
		if err := db.Create(&game).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create game configuration!", nil)
		}
		section.GameID = &game.ID
	}

	if err := db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// UpdateSection edits a section's title, content or game configuration
func UpdateSection(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil || sectionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
	}

	reqData, ok := c.Locals("validatedSectionUpdate").(*instructorValidators.SectionUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section learningModels.Section
	if err := db.Preload("Game").First(&section, sectionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if reqData.Title != "" {
		section.Title = reqData.Title
	}

	if section.Type == learningModels.SectionContent && len(reqData.ContentRef) > 0 {
		section.ContentRef = datatypes.JSON(reqData.ContentRef)
	}

	if section.Type == learningModels.SectionGame && section.Game != nil {
		game := section.Game
		if len(reqData.GameRules) > 0 {
			game.Rules = datatypes.JSON(reqData.GameRules)
		}
		if reqData.MaxScore > 0 {
			game.MaxScore = reqData.MaxScore
		}
		if reqData.PassingScore > 0 {
			game.PassingScore = reqData.PassingScore
		}
		if err := db.Save(game).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update game configuration!", nil)
		}
	}

	// Game config is saved above; don't re-upsert it through the association
	if err := db.Omit("Game").Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}
