package profile

import "github.com/orbsocial/backend/internal/model/emotion"

// Profile captures per-user emotional patterns accumulated across analyses.
type Profile struct {
	UserID            string                `json:"userId"`
	EmotionalBaseline emotion.Label         `json:"emotionalBaseline"`
	TypicalResponses  map[emotion.Label]int `json:"typicalResponses"`
	EmotionalTriggers map[string]int        `json:"emotionalTriggers"`
}
