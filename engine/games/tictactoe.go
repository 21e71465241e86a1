package games

import "encoding/json"

// validateTicTacToe checks a reported tic-tac-toe outcome. The human
// player is always 'X' by convention, so winning means winner == "X".
// The move list is not replayed against board rules; the client's win
// detection is trusted. Known limitation carried over from the MVP.
func validateTicTacToe(cfg Config, input json.RawMessage) Result {
	var in struct {
		Winner string          `json:"winner"` // "X", "O" or "draw"
		Moves  json.RawMessage `json:"moves"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return failed("Invalid input: expected winner and moves.")
	}

	if in.Winner == "" {
		return failed("Game not completed.")
	}

	if in.Winner != "X" {
		return failed("Try again. You need to win to proceed.")
	}

	return Result{
		Score:    cfg.MaxScore,
		IsPassed: true,
		Feedback: "Congratulations! You won!",
	}
}
