package learning

import "gorm.io/gorm"

// Subject is the top-level content grouping (e.g. Mathematics)
type Subject struct {
	gorm.Model
	Title       string `json:"title" gorm:"unique;not null"`
	Description string `json:"description"`
	Image       string `json:"image" gorm:"default:'/images/subjects/default.png'"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
