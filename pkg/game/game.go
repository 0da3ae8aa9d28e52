// Package game defines the game-type enumeration, round logs and the typed
// result payloads carried by each game.
package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies one of the supported mini-games.
type Type string

const (
	// TypePrediction is the price-prediction game; consecutive correct
	// predictions earn a streak bonus.
	TypePrediction Type = "prediction"
	TypeDice       Type = "dice"
	TypeDarts      Type = "darts"
)

// AllTypes lists every supported game type.
var AllTypes = []Type{TypePrediction, TypeDice, TypeDarts}

// Valid reports whether t is a supported game type.
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Log is one immutable game-round record.
type Log struct {
	ID        int64
	UserID    int64
	Type      Type
	RoundID   string
	Score     int64
	Result    json.RawMessage
	Metadata  json.RawMessage
	CreatedAt time.Time
}

// DefaultRoundID derives a round identifier from the submission time, used
// when the client does not supply one.
func DefaultRoundID(at time.Time) string {
	return fmt.Sprintf("round-%s", at.UTC().Format("20060102-150405"))
}

// PredictionResult is the outcome payload of the prediction game.
type PredictionResult struct {
	Direction string `json:"direction"`
	Correct   bool   `json:"correct"`
}

// DiceResult is the outcome payload of the dice game.
type DiceResult struct {
	Roll   int `json:"roll"`
	Target int `json:"target"`
}

// DartsResult is the outcome payload of the darts game.
type DartsResult struct {
	Hits   int `json:"hits"`
	Throws int `json:"throws"`
}

// Result is a tagged variant over the per-game payloads. Payloads that do
// not decode into the shape for their game type are kept opaque so older
// rows and future games still round-trip.
type Result struct {
	Type       Type
	Prediction *PredictionResult
	Dice       *DiceResult
	Darts      *DartsResult
	Opaque     json.RawMessage
}

// ParseResult decodes raw into the typed case for t.
func ParseResult(t Type, raw json.RawMessage) Result {
	res := Result{Type: t}
	if len(raw) == 0 {
		return res
	}

	switch t {
	case TypePrediction:
		var p PredictionResult
		if err := json.Unmarshal(raw, &p); err == nil {
			res.Prediction = &p
			return res
		}
	case TypeDice:
		var d DiceResult
		if err := json.Unmarshal(raw, &d); err == nil {
			res.Dice = &d
			return res
		}
	case TypeDarts:
		var d DartsResult
		if err := json.Unmarshal(raw, &d); err == nil {
			res.Darts = &d
			return res
		}
	}

	res.Opaque = raw
	return res
}

// IsWin reports whether the result counts as a winning round. Only the
// prediction game feeds the streak bonus, so only its outcome matters here.
func (r Result) IsWin() bool {
	return r.Prediction != nil && r.Prediction.Correct
}
