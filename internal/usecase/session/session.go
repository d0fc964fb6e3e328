package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/repository"
	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Session owns one assistant and its transcript.
// Operations run one at a time in call order.
type Session struct {
	id        string
	assistant Assistant
	turns     repository.TurnRepository
	createdAt time.Time

	// sem is a mutex whose acquisition can be cancelled
	sem       chan struct{}
	updatedAt time.Time
}

func newSession(id string, assistant Assistant, turns repository.TurnRepository) *Session {
	now := time.Now().UTC()
	return &Session{
		id:        id,
		assistant: assistant,
		turns:     turns,
		createdAt: now,
		sem:       make(chan struct{}, 1),
		updatedAt: now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) unlock() {
	<-s.sem
}

// touch must be called with the lock held.
func (s *Session) touch() {
	s.updatedAt = time.Now().UTC()
}

// Ingest clears the assistant and the transcript, then indexes files.
func (s *Session) Ingest(ctx context.Context, files []entity.FileData) (*entity.IngestReport, error) {
	ctx = logger.WithSession(ctx, s.id)

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()
	s.touch()

	s.assistant.Clear()
	if err := s.turns.DeleteTurns(ctx, s.id); err != nil {
		return nil, fmt.Errorf("reset transcript: %w", err)
	}

	report, err := s.assistant.Ingest(ctx, files)
	if err != nil {
		ctxzap.Warn(ctx, "ingestion failed", zap.Error(err))
		return nil, fmt.Errorf("ingest: %w", err)
	}

	return report, nil
}

// Ask answers query and records the user and assistant turns.
func (s *Session) Ask(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query", entity.ErrMissingField)
	}

	ctx = logger.WithSession(ctx, s.id)

	if err := s.lock(ctx); err != nil {
		return "", err
	}
	defer s.unlock()
	s.touch()

	asked := time.Now().UTC()
	answer := s.assistant.Ask(ctx, query)

	err := s.turns.AppendTurns(ctx, s.id,
		entity.Turn{Text: query, IsUser: true, CreatedAt: asked},
		entity.Turn{Text: answer, IsUser: false, CreatedAt: time.Now().UTC()},
	)
	if err != nil {
		return answer, fmt.Errorf("save turns: %w", err)
	}

	return answer, nil
}

// Clear drops the assistant's index. The transcript is kept.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	s.touch()

	s.assistant.Clear()
	return nil
}

// discard waits for the running operation, then releases the assistant's storage.
func (s *Session) discard(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	return s.assistant.Discard(ctx)
}

func (s *Session) Transcript(ctx context.Context) ([]entity.Turn, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	turns, err := s.turns.ListTurns(ctx, s.id)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return turns, nil
}

func (s *Session) Info(ctx context.Context) (*entity.SessionDTO, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	turns, err := s.turns.ListTurns(ctx, s.id)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}

	return &entity.SessionDTO{
		ID:        s.id,
		Ready:     s.assistant.Ready(),
		TurnCount: len(turns),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}, nil
}

func (s *Session) IngestAsync(ctx context.Context, files []entity.FileData) *Future[*entity.IngestReport] {
	return Go(ctx, func(ctx context.Context) (*entity.IngestReport, error) {
		return s.Ingest(ctx, files)
	})
}

func (s *Session) AskAsync(ctx context.Context, query string) *Future[string] {
	return Go(ctx, func(ctx context.Context) (string, error) {
		return s.Ask(ctx, query)
	})
}
