package conversation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	model "github.com/orbsocial/backend/internal/model/conversation"
	"github.com/orbsocial/backend/internal/model/emotion"
	"github.com/orbsocial/backend/internal/model/profile"
)

var ErrConversationNotFound = errors.New("conversation not found")

const defaultWindowSize = 5

// Analyzer 维护每个会话的有界情绪历史，并在滚动窗口上检测走向。
// 每个会话持有独立的锁：同一会话内的读-改-追加串行执行，
// 不同会话之间完全并行。
type Analyzer struct {
	windowSize int
	profiles   profile.Store

	mu            sync.RWMutex
	conversations map[string]*state
}

type state struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
}

// NewAnalyzer creates an analyzer with the given window size (default 5).
func NewAnalyzer(windowSize int, profiles profile.Store) *Analyzer {
	if windowSize < 1 {
		windowSize = defaultWindowSize
	}
	return &Analyzer{
		windowSize:    windowSize,
		profiles:      profiles,
		conversations: make(map[string]*state),
	}
}

// RecordAndAnalyze 在追加当前消息前基于既有窗口计算走向与迁移，
// 然后把 (text, resolved emotion, timestamp, analysis) 追加进历史，
// 超出窗口大小时淘汰最旧的一条。
func (a *Analyzer) RecordAndAnalyze(text, userID, conversationID string, resolved emotion.AnalysisResult) model.ContextResult {
	st := a.getOrCreate(conversationID)

	st.mu.Lock()
	defer st.mu.Unlock()

	labels := make([]emotion.Label, len(st.entries))
	for i, entry := range st.entries {
		labels[i] = entry.Emotion
	}

	trend := detectTrend(labels)
	transition := analyzeTransitions(labels)
	domains := detectDomains(text)

	result := model.ContextResult{
		Analysis:        resolved,
		Trend:           trend,
		Transition:      transition,
		Domains:         domains,
		Recommendations: contextRecommendations(trend, transition, domains),
	}

	if a.profiles != nil {
		if p, ok := a.profiles.Find(userID); ok {
			result.KnownUser = true
			result.UserBaseline = p.EmotionalBaseline
		}
	}

	st.entries = append(st.entries, model.HistoryEntry{
		Text:      text,
		Emotion:   resolved.Emotion,
		Timestamp: time.Now().UTC(),
		Analysis:  resolved,
	})
	if len(st.entries) > a.windowSize {
		st.entries = st.entries[1:]
	}

	return result
}

// Summarize 汇总一个会话的情绪分布、主导情绪与整体走向。
func (a *Analyzer) Summarize(conversationID string) (model.Summary, error) {
	a.mu.RLock()
	st, ok := a.conversations[conversationID]
	a.mu.RUnlock()
	if !ok {
		return model.Summary{}, ErrConversationNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.entries) == 0 {
		return model.Summary{}, ErrConversationNotFound
	}

	distribution := make(map[emotion.Label]int)
	dominant := st.entries[0].Emotion
	for _, entry := range st.entries {
		distribution[entry.Emotion]++
		if distribution[entry.Emotion] > distribution[dominant] {
			dominant = entry.Emotion
		}
	}

	labels := make([]emotion.Label, len(st.entries))
	for i, entry := range st.entries {
		labels[i] = entry.Emotion
	}

	return model.Summary{
		ConversationID:      conversationID,
		TotalMessages:       len(st.entries),
		EmotionDistribution: distribution,
		DominantEmotion:     dominant,
		EmotionalDiversity:  float64(len(distribution)) / float64(len(st.entries)),
		Duration:            formatDuration(st.entries),
		OverallTrend:        overallTrend(labels),
	}, nil
}

// HistoryLength 返回会话当前的历史条数，便于测试与诊断。
func (a *Analyzer) HistoryLength(conversationID string) int {
	a.mu.RLock()
	st, ok := a.conversations[conversationID]
	a.mu.RUnlock()
	if !ok {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (a *Analyzer) getOrCreate(conversationID string) *state {
	a.mu.RLock()
	st, ok := a.conversations[conversationID]
	a.mu.RUnlock()
	if ok {
		return st
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if st, ok = a.conversations[conversationID]; ok {
		return st
	}
	st = &state{}
	a.conversations[conversationID] = st
	return st
}

// 固定的三步升级/降级序列。部分标签（excitement、panic 等）不属于
// 闭集，仅作为历史序列的模式常量存在。
var escalationPatterns = [][]emotion.Label{
	{"neutral", "sadness", "anger"},
	{"joy", "excitement", "ecstasy"},
	{"fear", "panic", "terror"},
}

var deescalationPatterns = [][]emotion.Label{
	{"anger", "sadness", "neutral"},
	{"ecstasy", "joy", "peace"},
	{"terror", "fear", "anxiety"},
}

func detectTrend(labels []emotion.Label) model.Trend {
	if len(labels) == 0 {
		return model.TrendNewConversation
	}
	if len(labels) < 2 {
		return model.TrendStable
	}

	for _, pattern := range escalationPatterns {
		if tailMatches(labels, pattern) {
			return model.TrendEscalating
		}
	}
	for _, pattern := range deescalationPatterns {
		if tailMatches(labels, pattern) {
			return model.TrendDeEscalating
		}
	}

	distinct := make(map[emotion.Label]struct{})
	for _, label := range labels {
		distinct[label] = struct{}{}
	}
	switch {
	case len(distinct) == 1:
		return model.TrendStable
	case len(distinct) >= 3:
		return model.TrendVolatile
	default:
		return model.TrendMixed
	}
}

func tailMatches(labels []emotion.Label, pattern []emotion.Label) bool {
	if len(labels) < len(pattern) {
		return false
	}
	tail := labels[len(labels)-len(pattern):]
	for i := range pattern {
		if tail[i] != pattern[i] {
			return false
		}
	}
	return true
}

type transitionPair struct {
	from emotion.Label
	to   emotion.Label
}

var positiveTransitions = map[transitionPair]struct{}{
	{"sadness", "joy"}: {},
	{"fear", "peace"}:  {},
	{"anger", "calm"}:  {},
}

var negativeTransitions = map[transitionPair]struct{}{
	{"joy", "sadness"}: {},
	{"peace", "fear"}:  {},
	{"calm", "anger"}:  {},
}

func analyzeTransitions(labels []emotion.Label) model.TransitionAnalysis {
	analysis := model.TransitionAnalysis{Type: model.TransitionMixed}
	for i := 1; i < len(labels); i++ {
		pair := transitionPair{from: labels[i-1], to: labels[i]}
		analysis.Count++
		if _, ok := positiveTransitions[pair]; ok {
			analysis.Positive++
		}
		if _, ok := negativeTransitions[pair]; ok {
			analysis.Negative++
		}
	}

	switch {
	case analysis.Positive > analysis.Negative:
		analysis.Type = model.TransitionPositive
	case analysis.Negative > analysis.Positive:
		analysis.Type = model.TransitionNegative
	}
	return analysis
}

var domainKeywords = []struct {
	domain string
	terms  []string
}{
	{"work", []string{"boss", "work", "job", "career", "office", "meeting", "deadline"}},
	{"relationship", []string{"boyfriend", "girlfriend", "spouse", "partner", "family", "friend"}},
	{"health", []string{"doctor", "hospital", "sick", "pain", "medicine", "treatment"}},
	{"financial", []string{"money", "bills", "debt", "salary", "expenses", "budget"}},
	{"social", []string{"party", "event", "celebration", "gathering", "social", "people"}},
}

func detectDomains(text string) []string {
	lowered := strings.ToLower(text)
	var domains []string
	for _, d := range domainKeywords {
		for _, term := range d.terms {
			if strings.Contains(lowered, term) {
				domains = append(domains, d.domain)
				break
			}
		}
	}
	return domains
}

// contextRecommendations 针对每个触发条件追加一条固定建议，条件之间互不排斥。
func contextRecommendations(trend model.Trend, transition model.TransitionAnalysis, domains []string) []string {
	var recs []string
	if trend == model.TrendEscalating {
		recs = append(recs, "Emotional escalation detected - consider de-escalation techniques")
	}
	if trend == model.TrendVolatile {
		recs = append(recs, "Emotional volatility detected - consider grounding exercises")
	}
	if transition.Type == model.TransitionNegative {
		recs = append(recs, "Negative emotional trend detected - consider positive interventions")
	}
	for _, domain := range domains {
		switch domain {
		case "work":
			recs = append(recs, "Work-related context detected - consider work-life balance")
		case "health":
			recs = append(recs, "Health-related context detected - consider professional support")
		}
	}
	return recs
}

func formatDuration(entries []model.HistoryEntry) string {
	if len(entries) < 2 {
		return "0 minutes"
	}

	elapsed := entries[len(entries)-1].Timestamp.Sub(entries[0].Timestamp)
	seconds := int(elapsed.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%d minutes", seconds/60)
	default:
		return fmt.Sprintf("%d hours", seconds/3600)
	}
}

var positiveEmotions = map[emotion.Label]struct{}{
	emotion.Joy: {}, emotion.Love: {}, emotion.Peace: {},
}

var negativeEmotions = map[emotion.Label]struct{}{
	emotion.Sadness: {}, emotion.Anger: {}, emotion.Fear: {},
}

func overallTrend(labels []emotion.Label) string {
	if len(labels) < 2 {
		return "stable"
	}

	var positive, negative int
	for _, label := range labels {
		if _, ok := positiveEmotions[label]; ok {
			positive++
		}
		if _, ok := negativeEmotions[label]; ok {
			negative++
		}
	}

	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}
