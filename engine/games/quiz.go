package games

import (
	"encoding/json"
	"fmt"
	"math"
)

// validateQuiz scores selected options against the answer key. Answers
// pointing at unknown questions or wrong options simply don't count.
// Score is proportional to correct answers; passing requires reaching
// the configured passing score.
func validateQuiz(cfg Config, input json.RawMessage) Result {
	var rules struct {
		Questions []struct {
			Question           string   `json:"question"`
			Options            []string `json:"options"`
			CorrectOptionIndex int      `json:"correctOptionIndex"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(cfg.Rules, &rules); err != nil || len(rules.Questions) == 0 {
		return failed("Quiz is misconfigured: no questions.")
	}

	var in struct {
		Answers []struct {
			QuestionIndex       int `json:"questionIndex"`
			SelectedOptionIndex int `json:"selectedOptionIndex"`
		} `json:"answers"`
	}
	if err := json.Unmarshal(input, &in); err != nil || in.Answers == nil {
		return failed("Invalid input: answers must be an array.")
	}

	correctCount := 0
	credited := make(map[int]bool, len(rules.Questions))
	for _, ans := range in.Answers {
		if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(rules.Questions) {
			continue
		}
		// Each question counts once, no matter how often it is answered.
		if credited[ans.QuestionIndex] {
			continue
		}
		if rules.Questions[ans.QuestionIndex].CorrectOptionIndex == ans.SelectedOptionIndex {
			credited[ans.QuestionIndex] = true
			correctCount++
		}
	}

	score := int(math.Round(float64(correctCount) / float64(len(rules.Questions)) * float64(cfg.MaxScore)))
	isPassed := score >= cfg.PassingScore

	feedback := fmt.Sprintf("You got %d out of %d correct. Review the content and try again!", correctCount, len(rules.Questions))
	if isPassed {
		feedback = fmt.Sprintf("Great job! You got %d out of %d correct.", correctCount, len(rules.Questions))
	}

	return Result{Score: score, IsPassed: isPassed, Feedback: feedback}
}
