package controllers

import (
	"math"

	"gamelearn/database"
	"gamelearn/middleware"
	learningModels "gamelearn/models/learning"

	"github.com/gofiber/fiber/v2"
)

type ModuleProgress struct {
	ModuleID          uint   `json:"module_id"`
	Title             string `json:"title"`
	OrderIndex        int    `json:"order_index"`
	TotalSections     int64  `json:"total_sections"`
	CompletedSections int64  `json:"completed_sections"`
	Progress          int    `json:"progress"`
	LastSection       string `json:"last_section"`
}

type SubjectProgress struct {
	SubjectID       uint             `json:"subject_id"`
	Title           string           `json:"title"`
	Image           string           `json:"image"`
	Modules         []ModuleProgress `json:"modules"`
	OverallProgress int              `json:"overall_progress"`
}

// GetDetailedProgress returns the per-subject, per-module completion rollup
func GetDetailedProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subjects []learningModels.Subject
	if err := database.Database.Db.Where("is_active = ?", true).Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	db := database.Database.Db
	result := make([]SubjectProgress, len(subjects))
	for i, subject := range subjects {
		var modules []learningModels.Module
		db.Where("subject_id = ?", subject.ID).Order("order_index asc").Find(&modules)

		moduleProgress := make([]ModuleProgress, len(modules))
		var totalSubject, completedSubject int64
		for j, module := range modules {
			var total int64
			var completed int64
			db.Model(&learningModels.Section{}).Where("module_id = ?", module.ID).Count(&total)
			db.Model(&learningModels.Progress{}).
				Where("user_id = ? AND module_id = ? AND status = ?", userID, module.ID, learningModels.StatusCompleted).
				Count(&completed)

			lastSection := "Not started"
			var lastProgress learningModels.Progress
			if err := db.Where("user_id = ? AND module_id = ?", userID, module.ID).
				Order("updated_at desc").First(&lastProgress).Error; err == nil {
				var section learningModels.Section
				if err := db.First(&section, lastProgress.SectionID).Error; err == nil {
					lastSection = section.Title
				}
			}

			percent := 0
			if total > 0 {
				percent = int(math.Round(float64(completed) / float64(total) * 100))
			}

			moduleProgress[j] = ModuleProgress{
				ModuleID:          module.ID,
				Title:             module.Title,
				OrderIndex:        module.OrderIndex,
				TotalSections:     total,
				CompletedSections: completed,
				Progress:          percent,
				LastSection:       lastSection,
			}
			totalSubject += total
			completedSubject += completed
		}

		overall := 0
		if totalSubject > 0 {
			overall = int(math.Round(float64(completedSubject) / float64(totalSubject) * 100))
		}

		result[i] = SubjectProgress{
			SubjectID:       subject.ID,
			Title:           subject.Title,
			Image:           subject.Image,
			Modules:         moduleProgress,
			OverallProgress: overall,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", result)
}

type LearningPathEntry struct {
	SubjectID     uint   `json:"subject_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	Progress      int    `json:"progress"`
	CurrentModule string `json:"current_module"`
	ModuleOrder   int    `json:"module_order"`
}

// GetLearningPath returns each active subject with overall percent and
// the first not-yet-finished module
func GetLearningPath(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subjects []learningModels.Subject
	if err := database.Database.Db.Where("is_active = ?", true).Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	db := database.Database.Db
	result := make([]LearningPathEntry, len(subjects))
	for i, subject := range subjects {
		var modules []learningModels.Module
		db.Where("subject_id = ?", subject.ID).Order("order_index asc").Find(&modules)

		var totalSections int64
		if len(modules) > 0 {
			moduleIDs := make([]uint, len(modules))
			for j, m := range modules {
				moduleIDs[j] = m.ID
			}
			db.Model(&learningModels.Section{}).Where("module_id IN ?", moduleIDs).Count(&totalSections)
		}

		var completedCount int64
		db.Model(&learningModels.Progress{}).
			Where("user_id = ? AND subject_id = ? AND status = ?", userID, subject.ID, learningModels.StatusCompleted).
			Count(&completedCount)

		percent := 0
		if totalSections > 0 {
			percent = int(math.Round(float64(completedCount) / float64(totalSections) * 100))
		}

		// Current module: first one not fully completed
		currentModule := "N/A"
		moduleOrder := 1
		for _, module := range modules {
			var moduleSections, moduleCompleted int64
			db.Model(&learningModels.Section{}).Where("module_id = ?", module.ID).Count(&moduleSections)
			db.Model(&learningModels.Progress{}).
				Where("user_id = ? AND module_id = ? AND status = ?", userID, module.ID, learningModels.StatusCompleted).
				Count(&moduleCompleted)
			currentModule = module.Title
			moduleOrder = module.OrderIndex
			if moduleCompleted < moduleSections {
				break
			}
		}

		result[i] = LearningPathEntry{
			SubjectID:     subject.ID,
			Title:         subject.Title,
			Description:   subject.Description,
			Image:         subject.Image,
			Progress:      percent,
			CurrentModule: currentModule,
			ModuleOrder:   moduleOrder,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning path fetched successfully!", result)
}
