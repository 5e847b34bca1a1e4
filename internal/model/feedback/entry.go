package feedback

import (
	"time"

	"github.com/orbsocial/backend/internal/model/emotion"
)

// Type 区分反馈的来源意图。
type Type string

const (
	TypeCorrection  Type = "correction"
	TypeImprovement Type = "improvement"
	TypeNewExample  Type = "new_example"
)

// Entry is a single user feedback record. Immutable once created;
// persistence is delegated to a Repository implementation.
type Entry struct {
	ID                  string        `json:"id"`
	OriginalText        string        `json:"originalText"`
	PredictedEmotion    emotion.Label `json:"predictedEmotion"`
	PredictedConfidence float64       `json:"predictedConfidence"`
	CorrectedEmotion    emotion.Label `json:"correctedEmotion"`
	UserConfidence      float64       `json:"userConfidence"`
	FeedbackType        Type          `json:"feedbackType"`
	Notes               string        `json:"notes,omitempty"`
	Timestamp           time.Time     `json:"timestamp"`
	ModelVersion        string        `json:"modelVersion"`
	DetectionMethod     string        `json:"detectionMethod"`
}

// Priority 标记改进建议的紧急程度。
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Suggestion is an aggregated misclassification pattern surfaced for review.
type Suggestion struct {
	Predicted          emotion.Label `json:"predicted"`
	Corrected          emotion.Label `json:"corrected"`
	Count              int           `json:"count"`
	AvgConfidenceDelta float64       `json:"avgConfidenceDelta"`
	Examples           []string      `json:"examples"`
	Priority           Priority      `json:"priority"`
	Description        string        `json:"description"`
}

// Stats summarizes the accumulated feedback corpus.
type Stats struct {
	TotalFeedback         int                   `json:"totalFeedback"`
	EmotionDistribution   map[emotion.Label]int `json:"emotionDistribution"`
	TypeDistribution      map[Type]int          `json:"typeDistribution"`
	AvgConfidenceImproved float64               `json:"averageConfidenceImprovement"`
}
