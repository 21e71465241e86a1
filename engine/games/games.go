package games

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Known game type tags
const (
	TypeTicTacToe = "tic-tac-toe"
	TypeHangman   = "hangman"
	TypeQuiz      = "quiz"
	TypeMemory    = "memory"
)

// ErrUnsupportedGameType means the stored game configuration carries a
// tag no validator handles. This is corrupted data, not user error.
var ErrUnsupportedGameType = errors.New("game type not supported")

// Result is the outcome of validating one game submission.
type Result struct {
	Score    int    `json:"score"`
	IsPassed bool   `json:"isPassed"`
	Feedback string `json:"feedback"`
}

// Config is the game configuration a validator scores against. Rules is
// the game-type-specific rule document as stored.
type Config struct {
	Rules        json.RawMessage
	MaxScore     int
	PassingScore int
}

// Func validates a submitted game result against its configured rules.
// Validators are pure and must not fail for malformed input: a missing
// or bad field yields a zero-score failed Result with a descriptive
// feedback message so the user simply fails the attempt.
type Func func(cfg Config, input json.RawMessage) Result

var validators = map[string]Func{
	TypeTicTacToe: validateTicTacToe,
	TypeHangman:   validateHangman,
	TypeQuiz:      validateQuiz,
	TypeMemory:    validateMemory,
}

// ForType selects the validator for a game type tag. New game types are
// added by registering a new tag and function above.
func ForType(gameType string) (Func, error) {
	fn, ok := validators[gameType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGameType, gameType)
	}
	return fn, nil
}

func failed(feedback string) Result {
	return Result{Score: 0, IsPassed: false, Feedback: feedback}
}
