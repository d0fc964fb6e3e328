package repository

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertTurnSQL = `INSERT INTO session_turns (session_id, text, is_user, created_at) VALUES ($1, $2, $3, $4)`
	listTurnsSQL  = `SELECT text, is_user, created_at FROM session_turns WHERE session_id = $1 ORDER BY id`
	deleteTurnSQL = `DELETE FROM session_turns WHERE session_id = $1`
)

var _ TurnRepository = &TurnPostgres{}

// TurnPostgres implements TurnRepository using PostgreSQL
type TurnPostgres struct {
	db *pgxpool.Pool
}

func NewTurnPostgres(db *pgxpool.Pool) *TurnPostgres {
	return &TurnPostgres{
		db: db,
	}
}

func (r *TurnPostgres) AppendTurns(ctx context.Context, sessionID string, turns ...entity.Turn) error {
	sessID, err := parseSessionID(sessionID)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, t := range turns {
		batch.Queue(insertTurnSQL, sessID, t.Text, t.IsUser, t.CreatedAt)
	}

	// one transaction so a question is never stored without its answer
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("append turns: %w", err)
	}

	return nil
}

func (r *TurnPostgres) ListTurns(ctx context.Context, sessionID string) ([]entity.Turn, error) {
	sessID, err := parseSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, listTurnsSQL, sessID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}

	turns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Turn, error) {
		var (
			t         entity.Turn
			createdAt pgtype.Timestamptz
		)
		if err := row.Scan(&t.Text, &t.IsUser, &createdAt); err != nil {
			return t, err
		}
		t.CreatedAt = createdAt.Time
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan turns: %w", err)
	}

	return turns, nil
}

func (r *TurnPostgres) DeleteTurns(ctx context.Context, sessionID string) error {
	sessID, err := parseSessionID(sessionID)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, deleteTurnSQL, sessID); err != nil {
		return fmt.Errorf("delete turns: %w", err)
	}

	return nil
}

func parseSessionID(sessionID string) (pgtype.UUID, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid session ID: %w", err)
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}
