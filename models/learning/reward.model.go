package learning

import "gorm.io/gorm"

// Reward is issued once per (user, module) when every section of the
// module reaches COMPLETED.
type Reward struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_module_reward"`
	ModuleID      uint   `json:"module_id" gorm:"not null;uniqueIndex:idx_user_module_reward"`
	BadgeAwarded  bool   `json:"badge_awarded" gorm:"default:false"`
	CertificateID string `json:"certificate_id"` // issued certificate serial
}
