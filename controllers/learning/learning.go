package controllers

import (
	"errors"
	"strconv"

	"gamelearn/database"
	"gamelearn/engine/progression"
	"gamelearn/middleware"
	"gamelearn/models"
	learningModels "gamelearn/models/learning"
	"gamelearn/utils"

	"github.com/gofiber/fiber/v2"
)

// SectionWithProgress represents a section enriched with the user's status
type SectionWithProgress struct {
	learningModels.Section
	UserStatus string `json:"user_status"`
	UserScore  int    `json:"user_score"`
}

// GetSubjects lists all active subjects
func GetSubjects(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subjects []learningModels.Subject
	if err := database.Database.Db.Where("is_active = ?", true).Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", subjects)
}

// GetModules lists the active modules of a subject in traversal order
func GetModules(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	subjectID, err := strconv.Atoi(c.Params("subjectId"))
	if err != nil || subjectID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject ID!", nil)
	}

	var modules []learningModels.Module
	if err := database.Database.Db.
		Where("subject_id = ? AND is_active = ?", subjectID, true).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// GetSections lists the sections of a module with the user's progress
// joined in. First visit lazily unlocks the module's first section.
func GetSections(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
	}

	engine := progression.New(database.Database.Db)
	if err := engine.EnsureInitialized(userID, uint(moduleID)); err != nil {
		if errors.Is(err, progression.ErrModuleNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to initialize progress!", nil)
	}

	var sections []learningModels.Section
	if err := database.Database.Db.Preload("Game").
		Where("module_id = ?", moduleID).
		Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	var progressRecords []learningModels.Progress
	database.Database.Db.Where("user_id = ? AND module_id = ?", userID, moduleID).Find(&progressRecords)

	progressBySection := make(map[uint]learningModels.Progress)
	for _, p := range progressRecords {
		progressBySection[p.SectionID] = p
	}

	result := make([]SectionWithProgress, len(sections))
	for i, section := range sections {
		result[i] = SectionWithProgress{
			Section:    section,
			UserStatus: learningModels.StatusLocked,
		}
		if p, found := progressBySection[section.ID]; found {
			result[i].UserStatus = p.Status
			result[i].UserScore = p.Score
		}

		// Resolve external content references
		if section.Type == learningModels.SectionContent {
			if resolved, err := utils.ResolveContentRef(section.ContentRef); err == nil {
				result[i].ContentRef = resolved
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", result)
}

// MarkSectionComplete completes a CONTENT section and unlocks the next one
func MarkSectionComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil || sectionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
	}

	reqData := new(struct {
		TimeSpent int `json:"time_spent"` // minutes
	})
	// Body is optional
	_ = c.BodyParser(reqData)
	if reqData.TimeSpent < 0 {
		reqData.TimeSpent = 0
	}

	engine := progression.New(database.Database.Db)
	engine.OnModuleCompleted = utils.NotifyModuleCompleted

	nextSectionID, err := engine.CompleteContent(userID, uint(sectionID), reqData.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, progression.ErrSectionNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
		case errors.Is(err, progression.ErrInvalidSectionType):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only content sections can be manually completed!", nil)
		case errors.Is(err, progression.ErrSectionLocked):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Section is locked or not started!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete section!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section completed!", fiber.Map{
		"next_section_id": nextSectionID,
	})
}

// GetStats returns the student dashboard stats
func GetStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	stats, err := progression.New(database.Database.Db).Stats(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}

// GetRewards lists the user's earned badges and certificates
func GetRewards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rewards []learningModels.Reward
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&rewards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rewards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards fetched successfully!", rewards)
}
