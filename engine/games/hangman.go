package games

import (
	"encoding/json"
	"fmt"
	"strings"
)

const defaultMaxMistakes = 6

// validateHangman replays a hangman attempt against the configured
// target word. Guesses are case-insensitive and deduped; a mistake is a
// distinct guess not present in the word. The attempt wins when every
// distinct letter of the word was guessed and mistakes stayed within
// the allowance.
func validateHangman(cfg Config, input json.RawMessage) Result {
	var rules struct {
		Word        string `json:"word"`
		MaxMistakes int    `json:"maxMistakes"`
	}
	if err := json.Unmarshal(cfg.Rules, &rules); err != nil || rules.Word == "" {
		return failed("Game is misconfigured: no target word.")
	}

	var in struct {
		Guesses []string `json:"guesses"`
	}
	if err := json.Unmarshal(input, &in); err != nil || in.Guesses == nil {
		return failed("Invalid input: guesses must be an array.")
	}

	target := strings.ToUpper(rules.Word)
	guessed := make(map[string]bool)
	for _, g := range in.Guesses {
		guessed[strings.ToUpper(g)] = true
	}

	targetChars := make(map[string]bool)
	for _, ch := range target {
		targetChars[string(ch)] = true
	}

	mistakes := 0
	for g := range guessed {
		if !targetChars[g] {
			mistakes++
		}
	}

	allGuessed := true
	for ch := range targetChars {
		if !guessed[ch] {
			allGuessed = false
			break
		}
	}

	maxMistakes := rules.MaxMistakes
	if maxMistakes == 0 {
		maxMistakes = defaultMaxMistakes
	}

	if !allGuessed || mistakes > maxMistakes {
		return failed(fmt.Sprintf("Game Over. You made %d mistakes.", mistakes))
	}

	return Result{
		Score:    cfg.MaxScore,
		IsPassed: true,
		Feedback: fmt.Sprintf("Congratulations! You guessed the word: %s", target),
	}
}
