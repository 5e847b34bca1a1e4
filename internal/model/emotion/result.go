package emotion

import "encoding/json"

// Tier 标记关键词命中的层级。
type Tier string

const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierOverride Tier = "override"
)

// Match records a single keyword hit during scoring.
type Match struct {
	Tier    Tier
	Keyword string
}

// String renders the wire form used by the frontend ("strong: ecstatic").
// Override matches carry only their marker ("sarcasm_detected").
func (m Match) String() string {
	if m.Tier == TierOverride {
		return m.Keyword
	}
	return string(m.Tier) + ": " + m.Keyword
}

// MarshalJSON keeps matches as plain strings in API payloads.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Method 标识最终情绪标签的判定方式。
type Method string

const (
	MethodRuleBased       Method = "rule_based"
	MethodMLBased         Method = "ml_based"
	MethodHybridAgreement Method = "hybrid_agreement"
	MethodAIAnalyzed      Method = "ai_analyzed"
)

// AnalysisResult 是一次情绪分析的完整结果，仅在请求生命周期内存在。
type AnalysisResult struct {
	Emotion         Label    `json:"emotion"`
	Color           string   `json:"color"`
	Intensity       float64  `json:"intensity"`
	Confidence      float64  `json:"confidence"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Matches         []Match  `json:"matches"`
	Method          Method   `json:"method,omitempty"`
	Err             string   `json:"error,omitempty"`
}

// ScoredEmotion 保存单个情绪在打分阶段的中间状态。
type ScoredEmotion struct {
	Emotion    Label
	RawScore   float64
	TotalScore float64
	Confidence float64
	Intensity  float64
	Matches    []Match
}
