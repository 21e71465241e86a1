package utils

import (
	"log"

	"gamelearn/database"
	"gamelearn/models"
	learningModels "gamelearn/models/learning"
)

// NotifyModuleCompleted mails the module certificate to the user. Runs
// detached; a mail failure never affects the completion that earned it.
func NotifyModuleCompleted(userID uint, module learningModels.Module, reward learningModels.Reward) {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("[REWARD] user %d not found for reward mail: %v", userID, err)
		return
	}

	go func() {
		if err := SendModuleCertificateEmail(user.Email, user.Name, module.Title, reward.CertificateID); err != nil {
			log.Printf("[REWARD] failed to send certificate mail to %s: %v", user.Email, err)
		}
	}()
}
