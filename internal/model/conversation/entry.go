package conversation

import (
	"time"

	"github.com/orbsocial/backend/internal/model/emotion"
)

// HistoryEntry persists individual analyzed turns inside a conversation window.
type HistoryEntry struct {
	Text      string                 `json:"text"`
	Emotion   emotion.Label          `json:"emotion"`
	Timestamp time.Time              `json:"timestamp"`
	Analysis  emotion.AnalysisResult `json:"analysis"`
}

// Trend 描述会话窗口内情绪走向的定性标签。
type Trend string

const (
	TrendNewConversation Trend = "new_conversation"
	TrendStable          Trend = "stable"
	TrendEscalating      Trend = "escalating"
	TrendDeEscalating    Trend = "de-escalating"
	TrendVolatile        Trend = "volatile"
	TrendMixed           Trend = "mixed"
)

// TransitionType 按相邻情绪迁移的多数方向分类。
type TransitionType string

const (
	TransitionPositive TransitionType = "positive_trend"
	TransitionNegative TransitionType = "negative_trend"
	TransitionMixed    TransitionType = "mixed_trend"
)

// TransitionAnalysis 汇总窗口内相邻情绪对的迁移统计。
type TransitionAnalysis struct {
	Type     TransitionType `json:"type"`
	Count    int            `json:"count"`
	Positive int            `json:"positive"`
	Negative int            `json:"negative"`
}

// ContextResult combines the per-message analysis with window-level context.
type ContextResult struct {
	Analysis        emotion.AnalysisResult `json:"analysis"`
	Trend           Trend                  `json:"trend"`
	Transition      TransitionAnalysis     `json:"transition"`
	Domains         []string               `json:"domains"`
	KnownUser       bool                   `json:"knownUser"`
	UserBaseline    emotion.Label          `json:"userBaseline,omitempty"`
	Recommendations []string               `json:"recommendations"`
}

// Summary aggregates a conversation's emotional history for reporting.
type Summary struct {
	ConversationID      string                `json:"conversationId"`
	TotalMessages       int                   `json:"totalMessages"`
	EmotionDistribution map[emotion.Label]int `json:"emotionDistribution"`
	DominantEmotion     emotion.Label         `json:"dominantEmotion"`
	EmotionalDiversity  float64               `json:"emotionalDiversity"`
	Duration            string                `json:"duration"`
	OverallTrend        string                `json:"overallTrend"`
}
