package feedback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/orbsocial/backend/internal/model/emotion"
	"github.com/orbsocial/backend/internal/model/feedback"
)

var (
	ErrInvalidCorrection = errors.New("corrected emotion is not a known label")
	ErrInvalidPrediction = errors.New("predicted emotion is not a known label")
)

// ModelVersion 随词表与权重调整递增，写入每条反馈便于离线回溯。
const ModelVersion = "2.2"

const (
	suggestionThreshold   = 3
	highPriorityThreshold = 5
	maxExamples           = 5
)

// Service 汇集用户纠错反馈并聚合出改进建议。
type Service struct {
	repo feedback.Repository
}

// NewService wires the aggregator onto a repository.
func NewService(repo feedback.Repository) *Service {
	return &Service{repo: repo}
}

// RecordInput carries one user correction.
type RecordInput struct {
	OriginalText        string
	Predicted           emotion.Label
	PredictedConfidence float64
	Corrected           string
	UserConfidence      float64
	FeedbackType        string
	Notes               string
	DetectionMethod     string
}

// Record 保存一条纠错反馈，返回反馈 ID 以及是否为首次出现的误判模式。
// 新模式标记用于外部的优先审查。
func (s *Service) Record(ctx context.Context, input RecordInput) (string, bool, error) {
	corrected, ok := emotion.ParseLabel(input.Corrected)
	if !ok {
		return "", false, ErrInvalidCorrection
	}

	// 预测标签同样收敛到闭集，避免越界值成为聚合分组的键。
	predicted, ok := emotion.ParseLabel(string(input.Predicted))
	if !ok {
		return "", false, ErrInvalidPrediction
	}

	if input.UserConfidence <= 0 {
		input.UserConfidence = 1.0
	}

	detectionMethod := input.DetectionMethod
	if detectionMethod == "" {
		detectionMethod = "hybrid"
	}

	feedbackType := feedback.TypeCorrection
	switch feedback.Type(input.FeedbackType) {
	case feedback.TypeImprovement:
		feedbackType = feedback.TypeImprovement
	case feedback.TypeNewExample:
		feedbackType = feedback.TypeNewExample
	}

	newPattern, err := s.isNewPattern(ctx, predicted, corrected)
	if err != nil {
		return "", false, fmt.Errorf("check feedback pattern: %w", err)
	}

	entry := feedback.Entry{
		ID:                  uuid.NewString(),
		OriginalText:        input.OriginalText,
		PredictedEmotion:    predicted,
		PredictedConfidence: input.PredictedConfidence,
		CorrectedEmotion:    corrected,
		UserConfidence:      input.UserConfidence,
		FeedbackType:        feedbackType,
		Notes:               input.Notes,
		Timestamp:           time.Now().UTC(),
		ModelVersion:        ModelVersion,
		DetectionMethod:     detectionMethod,
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return "", false, fmt.Errorf("persist feedback: %w", err)
	}
	return entry.ID, newPattern, nil
}

// isNewPattern 判断 (predicted, corrected) 组合是否首次针对该纠正标签出现。
func (s *Service) isNewPattern(ctx context.Context, predicted, corrected emotion.Label) (bool, error) {
	existing, err := s.repo.ListByCorrected(ctx, corrected)
	if err != nil {
		return false, err
	}
	for _, entry := range existing {
		if entry.PredictedEmotion == predicted {
			return false, nil
		}
	}
	return true, nil
}

// Suggestions 按 (predicted, corrected) 分组聚合误判模式，只为出现三次以上
// 的组合生成建议，按出现次数降序排列。容忍与写入并发的最终一致快照。
func (s *Service) Suggestions(ctx context.Context) ([]feedback.Suggestion, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}

	type patternKey struct {
		predicted emotion.Label
		corrected emotion.Label
	}
	type patternStats struct {
		count    int
		deltaSum float64
		examples []string
	}

	patterns := make(map[patternKey]*patternStats)
	var order []patternKey
	for _, entry := range entries {
		key := patternKey{predicted: entry.PredictedEmotion, corrected: entry.CorrectedEmotion}
		stats, ok := patterns[key]
		if !ok {
			stats = &patternStats{}
			patterns[key] = stats
			order = append(order, key)
		}
		stats.count++
		stats.deltaSum += entry.UserConfidence - entry.PredictedConfidence
		if len(stats.examples) < maxExamples {
			stats.examples = append(stats.examples, entry.OriginalText)
		}
	}

	var suggestions []feedback.Suggestion
	for _, key := range order {
		stats := patterns[key]
		if stats.count < suggestionThreshold {
			continue
		}

		priority := feedback.PriorityMedium
		if stats.count >= highPriorityThreshold {
			priority = feedback.PriorityHigh
		}

		suggestions = append(suggestions, feedback.Suggestion{
			Predicted:          key.predicted,
			Corrected:          key.corrected,
			Count:              stats.count,
			AvgConfidenceDelta: stats.deltaSum / float64(stats.count),
			Examples:           stats.examples,
			Priority:           priority,
			Description: fmt.Sprintf(
				"Add keywords for '%s' to prevent misclassification as '%s'", key.corrected, key.predicted),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Count > suggestions[j].Count
	})
	return suggestions, nil
}

// Stats 透出存储层的聚合统计。
func (s *Service) Stats(ctx context.Context) (feedback.Stats, error) {
	return s.repo.Stats(ctx)
}

// TrainingData 导出 (text, corrected label) 对，供外部训练流程消费。
func (s *Service) TrainingData(ctx context.Context) ([][2]string, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}

	pairs := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		pairs = append(pairs, [2]string{entry.OriginalText, string(entry.CorrectedEmotion)})
	}
	return pairs, nil
}
