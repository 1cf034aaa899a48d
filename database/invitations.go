package database

import (
	"context"
	"database/sql"
	"fmt"

	"task-allocator/models"
)

const createInvitationsTable = `
CREATE TABLE IF NOT EXISTS meeting_invitations (
	id         SERIAL PRIMARY KEY,
	email      TEXT NOT NULL,
	subject    TEXT NOT NULL,
	meet_date  TEXT,
	meet_time  TEXT,
	location   TEXT,
	sent_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	send_error TEXT
)`

// InvitationLog guarda no PostgreSQL cada convite de reunião enviado.
type InvitationLog struct {
	db *sql.DB
}

// NewInvitationLog cria a tabela se ainda não existir.
func NewInvitationLog(ctx context.Context, db *sql.DB) (*InvitationLog, error) {
	if _, err := db.ExecContext(ctx, createInvitationsTable); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela meeting_invitations: %w", err)
	}
	return &InvitationLog{db: db}, nil
}

func (l *InvitationLog) RecordInvitation(ctx context.Context, rec models.MeetingInvitationRecord) (int64, error) {
	var sendErr sql.NullString
	if rec.SendError != "" {
		sendErr = sql.NullString{String: rec.SendError, Valid: true}
	}
	var id int64
	err := l.db.QueryRowContext(ctx,
		`INSERT INTO meeting_invitations (email, subject, meet_date, meet_time, location, send_error)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rec.Email, rec.Subject, rec.Date, rec.Time, rec.Location, sendErr,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao registrar convite: %w", err)
	}
	return id, nil
}
