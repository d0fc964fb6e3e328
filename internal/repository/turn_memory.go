package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/futig/resume-assistant/internal/entity"
)

// TurnRepository stores session transcripts
type TurnRepository interface {
	AppendTurns(ctx context.Context, sessionID string, turns ...entity.Turn) error
	ListTurns(ctx context.Context, sessionID string) ([]entity.Turn, error)
	DeleteTurns(ctx context.Context, sessionID string) error
}

var _ TurnRepository = &TurnMemory{}

// TurnMemory keeps transcripts in process memory
type TurnMemory struct {
	mu    sync.RWMutex
	turns map[string][]entity.Turn
}

func NewTurnMemory() *TurnMemory {
	return &TurnMemory{
		turns: make(map[string][]entity.Turn),
	}
}

func (r *TurnMemory) AppendTurns(_ context.Context, sessionID string, turns ...entity.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.turns[sessionID] = append(r.turns[sessionID], turns...)
	return nil
}

func (r *TurnMemory) ListTurns(_ context.Context, sessionID string) ([]entity.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.turns[sessionID]), nil
}

func (r *TurnMemory) DeleteTurns(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.turns, sessionID)
	return nil
}
