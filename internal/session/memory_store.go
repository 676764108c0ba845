package session

import (
	"sync"
	"time"
)

// MemoryStore keeps the session record in process memory. It is the
// zero-config default and the store injected by tests.
type MemoryStore struct {
	mu  sync.Mutex
	rec record

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Token
}

func (s *MemoryStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.UserID
}

func (s *MemoryStore) LoginTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.loginTime()
}

func (s *MemoryStore) Organization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Organization
}

func (s *MemoryStore) SetSession(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record{
		Token:     token,
		UserID:    userID,
		LoginTime: s.now().UnixMilli(),
	}
	return nil
}

func (s *MemoryStore) SetOrganization(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Organization = name
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record{}
	return nil
}
