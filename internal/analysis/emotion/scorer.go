package emotion

import (
	"sort"
	"strings"

	model "github.com/orbsocial/backend/internal/model/emotion"
)

// Weights 控制关键词打分的权重与并列判定阈值。
// 数值为经验常量，通过配置暴露以便调优。
type Weights struct {
	Strong    float64
	Moderate  float64
	Booster   float64
	TieMargin float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{Strong: 4, Moderate: 2, Booster: 1, TieMargin: 1.0}
}

const (
	confidenceFloor = 0.4
	confidenceSlope = 0.12
	confidenceCap   = 0.98
	intensitySlope  = 0.08
)

// Scorer 基于静态词表对文本做情绪打分。无状态，可并发使用。
type Scorer struct {
	weights  Weights
	lexicon  []model.LexiconEntry
	sarcasm  []string
	negation []string
}

// NewScorer creates a scorer over the built-in lexicon.
func NewScorer(weights Weights) *Scorer {
	if weights.Strong <= 0 {
		weights = DefaultWeights()
	}
	return &Scorer{
		weights:  weights,
		lexicon:  model.Lexicon(),
		sarcasm:  model.SarcasmIndicators(),
		negation: model.NegationWords(),
	}
}

// Score 对单条文本打分并返回完整分析结果。纯函数：相同输入必得相同输出。
func (s *Scorer) Score(text string) model.AnalysisResult {
	lowered := strings.ToLower(strings.TrimSpace(text))

	// 短路检查：讽刺与否定触发词直接返回固定结果。
	// 字面子串匹配，已知会在 "sure"、"no" 等常见词上过度触发。
	if containsAny(lowered, s.sarcasm) {
		return sarcasmResult()
	}
	if containsAny(lowered, s.negation) {
		return negationResult()
	}

	scored := s.scoreAll(lowered)
	if len(scored) == 0 {
		return defaultNeutral()
	}

	// 总分降序，分数相同时按词表顺序保持稳定。
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	primary := scored[0]
	if len(scored) > 1 {
		second := scored[1]
		// 并列消歧：次名分数足够接近且固有强度更高时反超。
		// 典型场景是 anger（基础强度 0.9）压过分数略高但更温和的情绪。
		if primary.TotalScore-second.TotalScore < s.weights.TieMargin &&
			second.Intensity > primary.Intensity {
			primary = second
		}
	}

	insights := buildInsights(primary, len(scored))

	return model.AnalysisResult{
		Emotion:         primary.Emotion,
		Color:           primary.Emotion.Color(),
		Intensity:       primary.Intensity,
		Confidence:      primary.Confidence,
		Insights:        insights,
		Recommendations: recommendations(primary.Emotion, primary.Intensity, lowered),
		Matches:         primary.Matches,
		Method:          model.MethodRuleBased,
	}
}

// scoreAll 计算每个情绪的加权得分，只保留得分为正的情绪。
func (s *Scorer) scoreAll(lowered string) []model.ScoredEmotion {
	var scored []model.ScoredEmotion
	for _, entry := range s.lexicon {
		var raw float64
		var matches []model.Match
		for _, kw := range entry.StrongKeywords {
			if strings.Contains(lowered, kw) {
				raw += s.weights.Strong
				matches = append(matches, model.Match{Tier: model.TierStrong, Keyword: kw})
			}
		}
		for _, kw := range entry.ModerateKeywords {
			if strings.Contains(lowered, kw) {
				raw += s.weights.Moderate
				matches = append(matches, model.Match{Tier: model.TierModerate, Keyword: kw})
			}
		}

		// 语境增强词只在基础分已为正时计入，单独出现不触发情绪。
		var boost float64
		if raw > 0 {
			for _, booster := range entry.ContextBoosters {
				if strings.Contains(lowered, booster) {
					boost += s.weights.Booster
				}
			}
		}

		total := raw + boost
		if total <= 0 {
			continue
		}

		scored = append(scored, model.ScoredEmotion{
			Emotion:    entry.Emotion,
			RawScore:   raw,
			TotalScore: total,
			Confidence: clamp01(min(confidenceCap, confidenceFloor+total*confidenceSlope)),
			Intensity:  clamp01(entry.BaseIntensity + total*intensitySlope),
			Matches:    matches,
		})
	}
	return scored
}

func buildInsights(primary model.ScoredEmotion, scoredCount int) []string {
	var insights []string
	switch {
	case primary.Confidence > 0.9:
		insights = append(insights, "Very strong "+string(primary.Emotion)+" indicators detected")
	case primary.Confidence > 0.8:
		insights = append(insights, "Strong "+string(primary.Emotion)+" indicators detected")
	case primary.Confidence > 0.7:
		insights = append(insights, "Moderate "+string(primary.Emotion)+" indicators detected")
	}
	if scoredCount > 1 {
		insights = append(insights, mixedEmotionsInsight(scoredCount))
	}
	return insights
}

func sarcasmResult() model.AnalysisResult {
	return model.AnalysisResult{
		Emotion:         model.Neutral,
		Color:           model.Neutral.Color(),
		Intensity:       0.6,
		Confidence:      0.7,
		Insights:        []string{"Sarcasm detected - emotion may be opposite of literal meaning"},
		Recommendations: []string{"Consider the context and tone of your message"},
		Matches:         []model.Match{{Tier: model.TierOverride, Keyword: "sarcasm_detected"}},
		Method:          model.MethodRuleBased,
	}
}

func negationResult() model.AnalysisResult {
	return model.AnalysisResult{
		Emotion:         model.Neutral,
		Color:           model.Neutral.Color(),
		Intensity:       0.5,
		Confidence:      0.6,
		Insights:        []string{"Negation detected - emotion meaning may be reversed"},
		Recommendations: []string{"Try expressing your feelings without negative words"},
		Matches:         []model.Match{{Tier: model.TierOverride, Keyword: "negation_detected"}},
		Method:          model.MethodRuleBased,
	}
}

func defaultNeutral() model.AnalysisResult {
	return model.AnalysisResult{
		Emotion:         model.Neutral,
		Color:           model.Neutral.Color(),
		Intensity:       0.5,
		Confidence:      0.6,
		Insights:        []string{"No strong emotional indicators detected"},
		Recommendations: []string{"Try expressing your feelings more specifically"},
		Matches:         nil,
		Method:          model.MethodRuleBased,
	}
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
