package session

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Manager keeps live sessions. Sessions idle for longer than the TTL are
// evicted together with their transcripts and index files.
type Manager struct {
	sessions     *cache.Cache
	newAssistant AssistantFactory
	turns        repository.TurnRepository
	logger       *zap.Logger
}

func NewManager(
	ttl, cleanupInterval time.Duration,
	newAssistant AssistantFactory,
	turns repository.TurnRepository,
	logger *zap.Logger,
) *Manager {
	m := &Manager{
		sessions:     cache.New(ttl, cleanupInterval),
		newAssistant: newAssistant,
		turns:        turns,
		logger:       logger,
	}
	m.sessions.OnEvicted(m.onEvicted)
	return m
}

// Create starts a session with a fresh random ID.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	s := newSession(id, m.newAssistant(id), m.turns)

	if err := m.sessions.Add(id, s, cache.DefaultExpiration); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", id))
	return s, nil
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}

	s := v.(*Session)
	m.sessions.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// GetOrCreate returns the session stored under key, creating it when missing.
// The session ID is derived from key, so the same key always maps to the same ID.
func (m *Manager) GetOrCreate(ctx context.Context, key string) (*Session, error) {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()

	if s, err := m.Get(ctx, id); err == nil {
		return s, nil
	}

	s := newSession(id, m.newAssistant(id), m.turns)
	if err := m.sessions.Add(id, s, cache.DefaultExpiration); err != nil {
		// created concurrently
		return m.Get(ctx, id)
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", id), zap.String("key", key))
	return s, nil
}

// Delete removes a session, its transcript and its index files.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if _, ok := m.sessions.Get(id); !ok {
		return fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}

	m.sessions.Delete(id)
	ctxzap.Info(ctx, "session deleted", zap.String("session_id", id))
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

func (m *Manager) onEvicted(id string, v any) {
	ctx := context.Background()

	if s, ok := v.(*Session); ok {
		if err := s.discard(ctx); err != nil {
			m.logger.Warn("failed to remove index of evicted session",
				zap.String("session_id", id),
				zap.Error(err),
			)
		}
	}

	if err := m.turns.DeleteTurns(ctx, id); err != nil {
		m.logger.Warn("failed to delete transcript of evicted session",
			zap.String("session_id", id),
			zap.Error(err),
		)
	}
}
