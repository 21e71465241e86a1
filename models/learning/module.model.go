package learning

import "gorm.io/gorm"

// Module belongs to exactly one subject; OrderIndex defines the
// traversal sequence within it
type Module struct {
	gorm.Model
	SubjectID  uint   `json:"subject_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"not null"` // 1-based, unique per subject
	IsActive   bool   `json:"is_active" gorm:"default:true"`
}
