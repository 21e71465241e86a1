package learning

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game holds the instructor-authored configuration for a GAME section.
// Rules is game-type specific and opaque to the storage layer; the game
// engine decodes it per type.
type Game struct {
	gorm.Model
	GameType     string         `json:"game_type" gorm:"not null"` // tic-tac-toe, hangman, quiz, memory
	Title        string         `json:"title"`
	Rules        datatypes.JSON `json:"rules"`
	MaxScore     int            `json:"max_score" gorm:"not null"`
	PassingScore int            `json:"passing_score" gorm:"not null"`
}
