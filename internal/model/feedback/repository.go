package feedback

import (
	"context"
	"sync"

	"github.com/orbsocial/backend/internal/model/emotion"
)

// Repository 抽象反馈条目的持久化，核心聚合逻辑不感知具体存储。
// 写入为追加式；读取允许最终一致的快照。
type Repository interface {
	Add(ctx context.Context, entry Entry) error
	ListByCorrected(ctx context.Context, corrected emotion.Label) ([]Entry, error)
	ListAll(ctx context.Context) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
}

// MemoryRepository implements Repository with an in-memory slice, suitable
// for tests and single-process deployments.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Add appends an entry. Entries are never mutated after insertion.
func (r *MemoryRepository) Add(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ListByCorrected 返回指定纠正标签下的全部反馈。
func (r *MemoryRepository) ListByCorrected(_ context.Context, corrected emotion.Label) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Entry
	for _, entry := range r.entries {
		if entry.CorrectedEmotion == corrected {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// ListAll 返回全部反馈的快照。
func (r *MemoryRepository) ListAll(_ context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make([]Entry, len(r.entries))
	copy(copied, r.entries)
	return copied, nil
}

// Stats 聚合反馈总量、分布与平均置信度提升。
func (r *MemoryRepository) Stats(_ context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalFeedback:       len(r.entries),
		EmotionDistribution: make(map[emotion.Label]int),
		TypeDistribution:    make(map[Type]int),
	}

	var deltaSum float64
	for _, entry := range r.entries {
		stats.EmotionDistribution[entry.CorrectedEmotion]++
		stats.TypeDistribution[entry.FeedbackType]++
		deltaSum += entry.UserConfidence - entry.PredictedConfidence
	}
	if len(r.entries) > 0 {
		stats.AvgConfidenceImproved = deltaSum / float64(len(r.entries))
	}
	return stats, nil
}
