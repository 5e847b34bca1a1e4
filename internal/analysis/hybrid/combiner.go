// Package hybrid merges rule-based scoring with an external classifier's
// output under a confidence-weighted policy.
package hybrid

import (
	"fmt"
	"log"

	"github.com/orbsocial/backend/internal/model/emotion"
)

const (
	ruleWeight     = 0.6
	externalWeight = 0.4

	ruleAgreementFloor     = 0.8
	externalAgreementFloor = 0.7
	agreementDelta         = 0.1
)

// ExternalResult 是外部分类器的归一化输出。不可用时 Available 为 false，
// 组合策略按置信度 0 处理，绝不失败。
type ExternalResult struct {
	Emotion    emotion.Label
	Confidence float64
	Available  bool
}

// Unavailable returns the degraded sentinel used when the classifier
// never responded in time.
func Unavailable() ExternalResult {
	return ExternalResult{Emotion: emotion.Neutral, Confidence: 0, Available: false}
}

// Combine 按 0.6/0.4 加权合并两侧置信度并选出最终标签。
// 任何内部异常都会被恢复为带错误标记的中性结果，不向调用方抛出。
func Combine(text string, rule emotion.AnalysisResult, external ExternalResult) (result emotion.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[hybrid] combine panic recovered: %v", r)
			result = degradedResult(fmt.Sprintf("combination failed: %v", r))
		}
	}()

	externalConfidence := external.Confidence
	if !external.Available {
		externalConfidence = 0
	}

	combined := rule.Confidence*ruleWeight + externalConfidence*externalWeight

	finalEmotion := rule.Emotion
	method := emotion.MethodRuleBased
	switch {
	case rule.Confidence > ruleAgreementFloor && externalConfidence > externalAgreementFloor:
		method = emotion.MethodHybridAgreement
	case rule.Confidence > externalConfidence:
		method = emotion.MethodRuleBased
	default:
		finalEmotion = external.Emotion
		method = emotion.MethodMLBased
	}

	insights := append([]string(nil), rule.Insights...)
	insights = append(insights, confidenceCommentary("Rule-based", rule.Confidence)...)
	insights = append(insights, confidenceCommentary("ML", externalConfidence)...)
	if diff := rule.Confidence - externalConfidence; diff < agreementDelta && diff > -agreementDelta {
		insights = append(insights, "Both detection methods agree")
	} else {
		insights = append(insights, fmt.Sprintf(
			"Detection methods differ: Rule-based (%.2f) vs ML (%.2f)", rule.Confidence, externalConfidence))
	}

	return emotion.AnalysisResult{
		Emotion:         finalEmotion,
		Color:           finalEmotion.Color(),
		Intensity:       rule.Intensity,
		Confidence:      combined,
		Insights:        insights,
		Recommendations: rule.Recommendations,
		Matches:         rule.Matches,
		Method:          method,
	}
}

func confidenceCommentary(side string, confidence float64) []string {
	switch {
	case confidence > 0.8:
		return []string{fmt.Sprintf("%s detection: Very confident (%.2f)", side, confidence)}
	case confidence > 0.6:
		return []string{fmt.Sprintf("%s detection: Confident (%.2f)", side, confidence)}
	default:
		return nil
	}
}

func degradedResult(marker string) emotion.AnalysisResult {
	return emotion.AnalysisResult{
		Emotion:         emotion.Neutral,
		Color:           emotion.Neutral.Color(),
		Intensity:       0.5,
		Confidence:      0.5,
		Insights:        []string{"Analysis failed, please try again"},
		Recommendations: []string{"Try rephrasing your text"},
		Method:          emotion.MethodRuleBased,
		Err:             marker,
	}
}
