package session

import (
	"context"
	"sync"
)

// MemoryStore 进程内会话存储，单实例部署的默认选择
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	keyed    *keyedMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		keyed:    newKeyedMutex(),
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	// 返回副本，调用方改完要显式 Save
	out := sess
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.UserID] = *sess
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) Lock(userID string) func() {
	return s.keyed.Lock(userID)
}
