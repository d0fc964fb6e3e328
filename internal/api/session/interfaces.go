package session

import (
	"context"

	"github.com/futig/resume-assistant/internal/usecase/session"
)

type SessionManager interface {
	Create(ctx context.Context) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}
