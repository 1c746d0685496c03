// Package transcript persists the ordered chat history of a session.
// Every Save replaces the stored history of that session.
package transcript

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cloudwego/eino/schema"
)

var ErrNotFound = errors.New("transcript not found")

type Sink interface {
	Save(ctx context.Context, sessionID string, messages []*schema.Message) error
}

type Store interface {
	Sink
	Load(ctx context.Context, sessionID string) ([]*schema.Message, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

type MemorySink struct {
	mu       sync.RWMutex
	sessions map[string][]*schema.Message
}

func NewMemorySink() *MemorySink {
	return &MemorySink{sessions: map[string][]*schema.Message{}}
}

func (s *MemorySink) Save(ctx context.Context, sessionID string, messages []*schema.Message) error {
	cp := normalize(messages)
	s.mu.Lock()
	s.sessions[sessionID] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Load(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]*schema.Message, len(messages))
	copy(cp, messages)
	return cp, nil
}

func (s *MemorySink) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}

func (s *MemorySink) Close() error {
	return nil
}

func normalize(messages []*schema.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
