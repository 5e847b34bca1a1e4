package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	conversationanalysis "github.com/orbsocial/backend/internal/analysis/conversation"
	scoring "github.com/orbsocial/backend/internal/analysis/emotion"
	"github.com/orbsocial/backend/internal/model/emotion"
	"github.com/orbsocial/backend/internal/model/profile"
	"github.com/orbsocial/backend/internal/service/analysis"
	"github.com/orbsocial/backend/internal/service/classifier"
)

type fakeClassifier struct {
	enabled bool
	result  classifier.Result
	err     error
}

func (f *fakeClassifier) Enabled() bool { return f.enabled }

func (f *fakeClassifier) Classify(ctx context.Context, text string) (classifier.Result, error) {
	if f.err != nil {
		return classifier.Result{}, f.err
	}
	return f.result, nil
}

func newService(cls analysis.Classifier) *analysis.Service {
	scorer := scoring.NewScorer(scoring.DefaultWeights())
	profiles := profile.NewMemoryStore()
	conversations := conversationanalysis.NewAnalyzer(5, profiles)
	return analysis.NewService(scorer, cls, conversations, profiles, analysis.Config{})
}

func TestAnalyzeValidatesInput(t *testing.T) {
	svc := newService(nil)

	if _, err := svc.Analyze(context.Background(), "  a  "); !errors.Is(err, analysis.ErrTextTooShort) {
		t.Fatalf("expected ErrTextTooShort, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), strings.Repeat("x", 1001)); !errors.Is(err, analysis.ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
}

func TestAnalyzeReturnsRuleBasedResult(t *testing.T) {
	svc := newService(nil)

	result, err := svc.Analyze(context.Background(), "I am ecstatic, I just got promoted!")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Emotion != emotion.Joy {
		t.Fatalf("expected joy, got %s", result.Emotion)
	}
	if result.Method != emotion.MethodRuleBased {
		t.Fatalf("expected rule_based method, got %s", result.Method)
	}
}

func TestAnalyzeAdvancedGeneratesConversationID(t *testing.T) {
	svc := newService(nil)

	result, err := svc.AnalyzeAdvanced(context.Background(), "I feel peaceful today", "user-1", "")
	if err != nil {
		t.Fatalf("AnalyzeAdvanced failed: %v", err)
	}
	if result.ConversationID == "" {
		t.Fatal("expected a generated conversation id")
	}

	summary, err := svc.Summarize(result.ConversationID)
	if err != nil {
		t.Fatalf("Summarize failed for generated id: %v", err)
	}
	if summary.TotalMessages != 1 {
		t.Fatalf("expected 1 recorded message, got %d", summary.TotalMessages)
	}
}

func TestAnalyzeAdvancedDegradesWhenClassifierFails(t *testing.T) {
	svc := newService(&fakeClassifier{enabled: true, err: classifier.ErrUnavailable})

	result, err := svc.AnalyzeAdvanced(context.Background(), "I am devastated and heartbroken", "user-2", "conv-degraded")
	if err != nil {
		t.Fatalf("AnalyzeAdvanced must not fail when the classifier is down: %v", err)
	}
	if result.Emotion != emotion.Sadness {
		t.Fatalf("expected rule-side sadness, got %s", result.Emotion)
	}
	if result.Method == emotion.MethodMLBased {
		t.Fatal("ml_based must not win with an unavailable classifier")
	}
}

func TestAnalyzeAdvancedUsesClassifierWhenConfident(t *testing.T) {
	cls := &fakeClassifier{
		enabled: true,
		result:  classifier.Result{Emotion: emotion.Fear, Confidence: 0.95},
	}
	svc := newService(cls)

	// 规则侧只命中一个 booster，置信度低，ML 侧应胜出。
	result, err := svc.AnalyzeAdvanced(context.Background(), "the deadline is tomorrow", "user-3", "conv-ml")
	if err != nil {
		t.Fatalf("AnalyzeAdvanced failed: %v", err)
	}
	if result.Emotion != emotion.Fear {
		t.Fatalf("expected classifier fear to win, got %s", result.Emotion)
	}
	if result.Method != emotion.MethodMLBased {
		t.Fatalf("expected ml_based method, got %s", result.Method)
	}
	if result.Color != emotion.Fear.Color() {
		t.Fatalf("color must follow the final label, got %s", result.Color)
	}
}

func TestAnalyzeAdvancedObservesUserProfile(t *testing.T) {
	scorer := scoring.NewScorer(scoring.DefaultWeights())
	profiles := profile.NewMemoryStore()
	conversations := conversationanalysis.NewAnalyzer(5, profiles)
	svc := analysis.NewService(scorer, nil, conversations, profiles, analysis.Config{})

	for i := 0; i < 3; i++ {
		if _, err := svc.AnalyzeAdvanced(context.Background(), "I love spending time with you", "user-observed", "conv-profile"); err != nil {
			t.Fatalf("AnalyzeAdvanced failed: %v", err)
		}
	}

	prof, ok := profiles.Find("user-observed")
	if !ok {
		t.Fatal("expected a profile after repeated analyses")
	}
	if prof.EmotionalBaseline != emotion.Love {
		t.Fatalf("expected love baseline, got %s", prof.EmotionalBaseline)
	}
}

func TestAnalyzeAdvancedCapsRecommendations(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	// 先铺出 neutral → sadness → anger 的升级序列，
	// 第四条消息命中高强度 sadness 且同时触发 work/health 领域。
	seeds := []string{
		"the meeting starts at three",
		"i am devastated and heartbroken",
		"i am furious about this delay",
	}
	for _, text := range seeds {
		if _, err := svc.AnalyzeAdvanced(ctx, text, "user-cap", "conv-cap"); err != nil {
			t.Fatalf("seed message failed: %v", err)
		}
	}

	result, err := svc.AnalyzeAdvanced(ctx, "i feel hopeless about my job and the doctor visits", "user-cap", "conv-cap")
	if err != nil {
		t.Fatalf("AnalyzeAdvanced failed: %v", err)
	}

	if len(result.Recommendations) > 3 {
		t.Fatalf("recommendations must stay capped at 3, got %d: %v",
			len(result.Recommendations), result.Recommendations)
	}

	if result.Trend != "escalating" {
		t.Fatalf("expected escalating trend, got %s", result.Trend)
	}
	found := false
	for _, insight := range result.Insights {
		if insight == "Emotional escalation detected - consider de-escalation techniques" {
			found = true
		}
	}
	if !found {
		t.Fatalf("context advisories must surface as insights, got %v", result.Insights)
	}
}

func TestCompareWithoutClassifier(t *testing.T) {
	svc := newService(nil)

	result, err := svc.Compare(context.Background(), "I am furious about this")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if result.RuleBased.Emotion != emotion.Anger {
		t.Fatalf("expected anger on the rule side, got %s", result.RuleBased.Emotion)
	}
	if result.AIAnalyzed != nil {
		t.Fatal("AIAnalyzed must be nil without a classifier")
	}
}

func TestCompareReportsAgreement(t *testing.T) {
	cls := &fakeClassifier{
		enabled: true,
		result:  classifier.Result{Emotion: emotion.Anger, Confidence: 0.9},
	}
	svc := newService(cls)

	result, err := svc.Compare(context.Background(), "I am furious about this")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if result.AIAnalyzed == nil {
		t.Fatal("expected an AI-analyzed result")
	}
	if result.AIAnalyzed.Method != emotion.MethodAIAnalyzed {
		t.Fatalf("expected ai_analyzed method, got %s", result.AIAnalyzed.Method)
	}
	if !result.Agreement {
		t.Fatal("expected both pathways to agree on anger")
	}
}
