package analysis

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/orbsocial/backend/internal/analysis/conversation"
	scoring "github.com/orbsocial/backend/internal/analysis/emotion"
	"github.com/orbsocial/backend/internal/analysis/hybrid"
	model "github.com/orbsocial/backend/internal/model/conversation"
	"github.com/orbsocial/backend/internal/model/emotion"
	"github.com/orbsocial/backend/internal/model/profile"
	"github.com/orbsocial/backend/internal/service/classifier"
)

// 输入校验错误，由 HTTP 层映射为 400。
var (
	ErrTextTooShort = errors.New("text must be at least 2 characters")
	ErrTextTooLong  = errors.New("text exceeds the maximum length")
)

const (
	minTextLength        = 2
	defaultMaxTextLength = 1000
)

// Classifier 抽象外部分类器，便于在测试中替换。
type Classifier interface {
	Enabled() bool
	Classify(ctx context.Context, text string) (classifier.Result, error)
}

// Config 控制分析服务的行为。
type Config struct {
	MaxTextLength int
}

// AdvancedResult 是上下文感知分析的完整响应载荷。
type AdvancedResult struct {
	ConversationID  string                   `json:"conversationId"`
	Emotion         emotion.Label            `json:"emotion"`
	Color           string                   `json:"color"`
	Intensity       float64                  `json:"intensity"`
	Confidence      float64                  `json:"confidence"`
	Method          emotion.Method           `json:"method"`
	Insights        []string                 `json:"insights"`
	Recommendations []string                 `json:"recommendations"`
	Matches         []emotion.Match          `json:"matches"`
	Trend           model.Trend              `json:"trend"`
	Transition      model.TransitionAnalysis `json:"transition"`
	Domains         []string                 `json:"domains,omitempty"`
	KnownUser       bool                     `json:"knownUser"`
	UserBaseline    emotion.Label            `json:"userBaseline,omitempty"`
}

// ComparisonResult 并排返回两条检测通路的结果，供调参时对比。
type ComparisonResult struct {
	RuleBased  emotion.AnalysisResult  `json:"ruleBased"`
	AIAnalyzed *emotion.AnalysisResult `json:"aiAnalyzed,omitempty"`
	Agreement  bool                    `json:"agreement"`
}

// Service 负责编排打分、外部分类、混合合并与会话上下文分析。
type Service struct {
	scorer        *scoring.Scorer
	classifier    Classifier
	conversations *conversation.Analyzer
	profiles      profile.Store
	maxTextLength int
}

// NewService 创建分析服务。classifier 可以为 nil，此时只走规则通路。
func NewService(scorer *scoring.Scorer, cls Classifier, conversations *conversation.Analyzer, profiles profile.Store, cfg Config) *Service {
	maxLen := cfg.MaxTextLength
	if maxLen <= 0 {
		maxLen = defaultMaxTextLength
	}
	return &Service{
		scorer:        scorer,
		classifier:    cls,
		conversations: conversations,
		profiles:      profiles,
		maxTextLength: maxLen,
	}
}

// Analyze 对单条文本做规则打分，不涉及会话状态。
func (s *Service) Analyze(ctx context.Context, text string) (emotion.AnalysisResult, error) {
	text, err := s.validate(text)
	if err != nil {
		return emotion.AnalysisResult{}, err
	}

	result := s.scorer.Score(text)
	result.Method = emotion.MethodRuleBased
	return result, nil
}

// AnalyzeAdvanced 走完整通路：规则打分、外部分类、混合合并，
// 然后把最终结果写入会话窗口并更新用户画像。
// conversationID 为空时会生成新的会话标识并随结果返回。
func (s *Service) AnalyzeAdvanced(ctx context.Context, text, userID, conversationID string) (AdvancedResult, error) {
	text, err := s.validate(text)
	if err != nil {
		return AdvancedResult{}, err
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	rule := s.scorer.Score(text)
	external := s.classifyExternal(ctx, text)
	combined := hybrid.Combine(text, rule, external)

	contextResult := s.conversations.RecordAndAnalyze(text, userID, conversationID, combined)
	if userID != "" && s.profiles != nil {
		s.profiles.Observe(userID, combined.Emotion)
	}

	// 上下文建议归入洞察；建议列表保持规则侧产出，长度上限不变。
	insights := append([]string(nil), combined.Insights...)
	insights = append(insights, contextResult.Recommendations...)

	return AdvancedResult{
		ConversationID:  conversationID,
		Emotion:         combined.Emotion,
		Color:           combined.Color,
		Intensity:       combined.Intensity,
		Confidence:      combined.Confidence,
		Method:          combined.Method,
		Insights:        insights,
		Recommendations: combined.Recommendations,
		Matches:         combined.Matches,
		Trend:           contextResult.Trend,
		Transition:      contextResult.Transition,
		Domains:         contextResult.Domains,
		KnownUser:       contextResult.KnownUser,
		UserBaseline:    contextResult.UserBaseline,
	}, nil
}

// Compare 并排运行两条通路。外部分类不可用时 AIAnalyzed 为空，
// 调用方仍然拿到规则结果。
func (s *Service) Compare(ctx context.Context, text string) (ComparisonResult, error) {
	text, err := s.validate(text)
	if err != nil {
		return ComparisonResult{}, err
	}

	rule := s.scorer.Score(text)
	rule.Method = emotion.MethodRuleBased

	result := ComparisonResult{RuleBased: rule}
	if s.classifier == nil || !s.classifier.Enabled() {
		return result, nil
	}

	external, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("[analysis] comparison classifier unavailable: %v", err)
		return result, nil
	}

	ai := emotion.AnalysisResult{
		Emotion:    external.Emotion,
		Color:      external.Emotion.Color(),
		Intensity:  external.Confidence,
		Confidence: external.Confidence,
		Method:     emotion.MethodAIAnalyzed,
	}
	result.AIAnalyzed = &ai
	result.Agreement = ai.Emotion == rule.Emotion
	return result, nil
}

// Summarize 返回会话的情绪汇总。
func (s *Service) Summarize(conversationID string) (model.Summary, error) {
	return s.conversations.Summarize(conversationID)
}

func (s *Service) classifyExternal(ctx context.Context, text string) hybrid.ExternalResult {
	if s.classifier == nil || !s.classifier.Enabled() {
		return hybrid.Unavailable()
	}
	external, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("[analysis] classifier degraded: %v", err)
		return hybrid.Unavailable()
	}
	return hybrid.ExternalResult{
		Emotion:    external.Emotion,
		Confidence: external.Confidence,
		Available:  true,
	}
}

func (s *Service) validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < minTextLength {
		return "", ErrTextTooShort
	}
	if len(text) > s.maxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}
