package games

import (
	"encoding/json"
	"fmt"
	"math"
)

type memoryPair struct {
	Item1 string `json:"item1"`
	Item2 string `json:"item2"`
}

// validateMemory counts submitted pairs that match a canonical pair in
// either order, scoring proportionally against the answer key.
func validateMemory(cfg Config, input json.RawMessage) Result {
	var rules struct {
		Pairs []memoryPair `json:"pairs"`
	}
	if err := json.Unmarshal(cfg.Rules, &rules); err != nil || len(rules.Pairs) == 0 {
		return failed("Memory game is misconfigured: no pairs.")
	}

	var in struct {
		Pairs []memoryPair `json:"pairs"`
	}
	if err := json.Unmarshal(input, &in); err != nil || in.Pairs == nil {
		return failed("Invalid input: pairs must be an array.")
	}

	correctCount := 0
	matched := make([]bool, len(rules.Pairs))
	for _, pair := range in.Pairs {
		for i, cp := range rules.Pairs {
			// Each canonical pair can be claimed once.
			if matched[i] {
				continue
			}
			if (cp.Item1 == pair.Item1 && cp.Item2 == pair.Item2) ||
				(cp.Item1 == pair.Item2 && cp.Item2 == pair.Item1) {
				matched[i] = true
				correctCount++
				break
			}
		}
	}

	score := int(math.Round(float64(correctCount) / float64(len(rules.Pairs)) * float64(cfg.MaxScore)))
	isPassed := score >= cfg.PassingScore

	feedback := fmt.Sprintf("You matched %d out of %d pairs. Keep practicing!", correctCount, len(rules.Pairs))
	if isPassed {
		feedback = fmt.Sprintf("Excellent! You matched all %d pairs correctly.", correctCount)
	}

	return Result{Score: score, IsPassed: isPassed, Feedback: feedback}
}
