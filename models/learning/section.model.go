package learning

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section types
const (
	SectionContent = "CONTENT"
	SectionGame    = "GAME"
)

// Section is the smallest orderable unit of a module: either a content
// page or a game challenge. OrderIndex drives the unlock chain; the
// successor of a section is looked up as (ModuleID, OrderIndex+1),
// never stored.
type Section struct {
	gorm.Model
	ModuleID   uint           `json:"module_id" gorm:"index;not null"`
	Type       string         `json:"type" gorm:"not null"`        // CONTENT or GAME
	OrderIndex int            `json:"order_index" gorm:"not null"` // 1-based, unique per module
	Title      string         `json:"title"`
	ContentRef datatypes.JSON `json:"content_ref"`          // CONTENT only; {"text": ...} or {"url": ...}
	GameID     *uint          `json:"game_id" gorm:"index"` // GAME only
	Game       *Game          `json:"game,omitempty" gorm:"foreignKey:GameID"`
}
