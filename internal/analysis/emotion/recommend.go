package emotion

import (
	"fmt"
	"strings"

	model "github.com/orbsocial/backend/internal/model/emotion"
)

const maxRecommendations = 3

// highIntensityBand 以上走"高强度"建议模板。
const highIntensityBand = 0.8

var highIntensityAdvice = map[model.Label][]string{
	model.Sadness: {
		"Consider reaching out to a trusted friend or counselor for support",
		"Allow yourself to feel these emotions - they are valid and temporary",
	},
	model.Anger: {
		"Take several deep breaths and step away from the situation if possible",
		"Consider writing down your feelings before taking any action",
	},
	model.Fear: {
		"Focus on what you can control in this moment",
		"Try grounding techniques: name 5 things you can see, 4 you can touch",
	},
}

var moderateIntensityAdvice = map[model.Label][]string{
	model.Sadness: {
		"Try engaging in a comforting activity like listening to music or taking a walk",
		"Practice self-compassion and remember that difficult feelings pass",
	},
	model.Anger: {
		"Try to identify the root cause of your frustration",
		"Channel this energy into something constructive",
	},
	model.Fear: {
		"Break down your concerns into smaller, manageable parts",
		"Consider talking to someone about what's worrying you",
	},
	model.Joy: {
		"Share this positive energy with someone you care about",
		"Take a moment to savor and remember this feeling",
	},
	model.Love: {
		"Express your feelings to the person who matters to you",
		"Consider creative ways to show your appreciation",
	},
	model.Peace: {
		"Use this calm state for reflection or planning",
		"Consider what led to this peaceful feeling to recreate it later",
	},
}

// domainOverlay 在固定顺序下追加领域相关建议：work → relationship → health。
type domainOverlay struct {
	terms  []string
	advice string
}

var domainOverlays = []domainOverlay{
	{
		terms:  []string{"work", "job", "boss", "career"},
		advice: "Remember to maintain work-life balance and take breaks when needed",
	},
	{
		terms:  []string{"relationship", "friend", "family"},
		advice: "Open and honest communication strengthens relationships",
	},
	{
		terms:  []string{"health", "sick", "doctor"},
		advice: "Prioritize your physical and mental wellbeing",
	},
}

// recommendations 按 (情绪, 强度档) 选模板，再叠加领域建议，整体截断到 3 条。
func recommendations(label model.Label, intensity float64, lowered string) []string {
	var recs []string

	if intensity > highIntensityBand {
		if advice, ok := highIntensityAdvice[label]; ok {
			recs = append(recs, advice...)
		} else if advice, ok := moderateIntensityAdvice[label]; ok {
			recs = append(recs, advice...)
		}
	} else if advice, ok := moderateIntensityAdvice[label]; ok {
		recs = append(recs, advice...)
	}

	for _, overlay := range domainOverlays {
		for _, term := range overlay.terms {
			if strings.Contains(lowered, term) {
				recs = append(recs, overlay.advice)
				break
			}
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func mixedEmotionsInsight(count int) string {
	return fmt.Sprintf("Mixed emotions detected: %d different states", count)
}
