package profile

import (
	"sync"

	"github.com/orbsocial/backend/internal/model/emotion"
)

// Store exposes user profile lookups for the context analyzer.
type Store interface {
	Find(userID string) (Profile, bool)
	Observe(userID string, label emotion.Label)
}

// MemoryStore implements Store with an in-memory map, suitable for a single
// process. Profiles are created lazily on first observation and only ever
// grow; nothing is deleted within the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore returns an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Find 返回用户画像的只读拷贝。
func (s *MemoryStore) Find(userID string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return Profile{}, false
	}

	copied := Profile{
		UserID:            p.UserID,
		EmotionalBaseline: p.EmotionalBaseline,
		TypicalResponses:  make(map[emotion.Label]int, len(p.TypicalResponses)),
		EmotionalTriggers: make(map[string]int, len(p.EmotionalTriggers)),
	}
	for k, v := range p.TypicalResponses {
		copied.TypicalResponses[k] = v
	}
	for k, v := range p.EmotionalTriggers {
		copied.EmotionalTriggers[k] = v
	}
	return copied, true
}

// Observe 累加一次情绪观测，首次引用时惰性创建画像。
// 基线取累计出现最多的情绪标签。
func (s *MemoryStore) Observe(userID string, label emotion.Label) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		p = &Profile{
			UserID:            userID,
			EmotionalBaseline: emotion.Neutral,
			TypicalResponses:  make(map[emotion.Label]int),
			EmotionalTriggers: make(map[string]int),
		}
		s.profiles[userID] = p
	}

	p.TypicalResponses[label]++
	if p.TypicalResponses[label] > p.TypicalResponses[p.EmotionalBaseline] || p.EmotionalBaseline == "" {
		p.EmotionalBaseline = label
	}
}
