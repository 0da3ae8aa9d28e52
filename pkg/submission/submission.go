// Package submission defines the game score submission contracts.
package submission

import (
	"encoding/json"

	"github.com/playchain/arcade-backend/pkg/game"
)

// SubmitRequest is one finished game round. RoundID is optional; when
// absent a round id is derived from the submission time.
type SubmitRequest struct {
	GameType game.Type       `json:"gameType" validate:"required"`
	Score    float64         `json:"score"`
	RoundID  string          `json:"roundId,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// SubmitResponse reports the credited round.
type SubmitResponse struct {
	Success    bool      `json:"success"`
	GameType   game.Type `json:"gameType"`
	RoundID    string    `json:"roundId"`
	Score      int64     `json:"score"`
	Bonus      int64     `json:"bonus"`
	Streak     int       `json:"streak"`
	TotalScore int64     `json:"totalScore"`
}
