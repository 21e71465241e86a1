package progression

import (
	"errors"
	"log"

	learningModels "gamelearn/models/learning"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maybeIssueReward awards the module badge and certificate once every
// section of the module is COMPLETED for the user. Best-effort: reward
// issuance must never fail the completion that triggered it.
func (e *Engine) maybeIssueReward(userID, moduleID uint) {
	var totalSections int64
	e.db.Model(&learningModels.Section{}).Where("module_id = ?", moduleID).Count(&totalSections)

	var completedSections int64
	e.db.Model(&learningModels.Progress{}).
		Where("user_id = ? AND module_id = ? AND status = ?", userID, moduleID, learningModels.StatusCompleted).
		Count(&completedSections)

	if totalSections == 0 || completedSections < totalSections {
		return
	}

	var existing learningModels.Reward
	err := e.db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ENGINE] reward lookup failed for user %d module %d: %v", userID, moduleID, err)
		return
	}

	reward := learningModels.Reward{
		UserID:        userID,
		ModuleID:      moduleID,
		BadgeAwarded:  true,
		CertificateID: uuid.NewString(),
	}
	if err := e.db.Create(&reward).Error; err != nil {
		log.Printf("[ENGINE] failed to issue reward for user %d module %d: %v", userID, moduleID, err)
		return
	}

	if e.OnModuleCompleted != nil {
		var module learningModels.Module
		if err := e.db.First(&module, moduleID).Error; err == nil {
			e.OnModuleCompleted(userID, module, reward)
		}
	}
}
