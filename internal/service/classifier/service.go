package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/orbsocial/backend/internal/model/emotion"
)

// ErrUnavailable 表示分类器在限定时间内没有给出可用结果。
// 调用方应降级到规则打分，而不是失败。
var ErrUnavailable = errors.New("external classifier unavailable")

const defaultTimeout = 10 * time.Second

// Config 控制外部分类器的行为。
type Config struct {
	Enabled bool
	Timeout time.Duration
}

// LabelScore 是分类器返回的开放词表标签与得分。
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Result 是归一化后的分类结果：开放标签已映射到闭集。
type Result struct {
	Emotion    emotion.Label
	Confidence float64
	RawLabel   string
	Scores     []LabelScore
}

// Service 通过大模型链路对文本做情绪分类，并把开放词表标签
// 归一化到系统的固定情绪集。
type Service struct {
	enabled  bool
	runnable compose.Runnable[map[string]any, *schema.Message]
	timeout  time.Duration
}

// NewService 创建分类服务。chatModel 可重用进程内已有的模型实例。
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	svc := &Service{
		enabled: cfg.Enabled && chatModel != nil,
		timeout: timeout,
	}
	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classifier chain: %w", err)
	}

	svc.runnable = runnable
	return svc, nil
}

// Enabled 返回分类器是否可用。
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.runnable != nil
}

// Classify 调用模型并返回归一化结果。超时或输出不可解析时返回
// ErrUnavailable，绝不阻塞超过配置的上限。
func (s *Service) Classify(ctx context.Context, text string) (Result, error) {
	if !s.Enabled() {
		return Result{}, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.runnable.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		log.Printf("[classifier] invoke failed: %v", err)
		return Result{}, ErrUnavailable
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return Result{}, ErrUnavailable
	}

	scores, err := ParseScores(msg.Content)
	if err != nil {
		log.Printf("[classifier] output parse failed: %v", err)
		return Result{}, ErrUnavailable
	}
	return Normalize(scores), nil
}

// ParseScores 从模型输出中提取 (label, score) 数组，容忍 JSON 前后的杂散文本。
func ParseScores(content string) ([]LabelScore, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json array")
	}

	var scores []LabelScore
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &scores); err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("empty score list")
	}
	return scores, nil
}

// Normalize 把得分最高的开放标签映射到闭集；未知标签映射为 neutral。
func Normalize(scores []LabelScore) Result {
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	rawLabel := strings.ToLower(strings.TrimSpace(top.Label))
	mapped, ok := labelNormalization[rawLabel]
	if !ok {
		mapped = emotion.Neutral
	}

	confidence := top.Score
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return Result{
		Emotion:    mapped,
		Confidence: confidence,
		RawLabel:   rawLabel,
		Scores:     scores,
	}
}

// labelNormalization 把分类器的开放词表映射到固定情绪集。
var labelNormalization = map[string]emotion.Label{
	"joy":            emotion.Joy,
	"love":           emotion.Love,
	"sadness":        emotion.Sadness,
	"anger":          emotion.Anger,
	"fear":           emotion.Fear,
	"surprise":       emotion.Joy,
	"neutral":        emotion.Neutral,
	"disgust":        emotion.Anger,
	"optimism":       emotion.Joy,
	"pessimism":      emotion.Sadness,
	"trust":          emotion.Peace,
	"anticipation":   emotion.Joy,
	"confusion":      emotion.Neutral,
	"remorse":        emotion.Sadness,
	"disappointment": emotion.Sadness,
	"realization":    emotion.Neutral,
	"curiosity":      emotion.Neutral,
	"admiration":     emotion.Love,
	"amusement":      emotion.Joy,
	"annoyance":      emotion.Anger,
	"gratitude":      emotion.Joy,
	"relief":         emotion.Peace,
	"pride":          emotion.Joy,
	"excitement":     emotion.Joy,
	"satisfaction":   emotion.Peace,
	"embarrassment":  emotion.Fear,
	"grief":          emotion.Sadness,
	"nervousness":    emotion.Fear,
	"contentment":    emotion.Peace,
	"hope":           emotion.Joy,
	"loneliness":     emotion.Sadness,
	"frustration":    emotion.Anger,
	"enthusiasm":     emotion.Joy,
	"worry":          emotion.Fear,
	"boredom":        emotion.Neutral,
	"shame":          emotion.Fear,
	"jealousy":       emotion.Anger,
	"sympathy":       emotion.Love,
	"awe":            emotion.Joy,
	"contempt":       emotion.Anger,
}

const classifierSystemPrompt = "You are an emotion classification engine. Read the user's message and respond with only a JSON array of objects, each with a \"label\" field (a lowercase emotion word such as joy, sadness, anger, fear, love, surprise, disgust, optimism, neutral) and a \"score\" field (a number between 0 and 1), ordered from most to least likely. Do not output anything except the JSON array."

const classifierUserPrompt = "Message:\n{text}\n\nReturn the JSON array."
