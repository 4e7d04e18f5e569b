package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

const messageColumns = `
	m.id, m.cohort_id, m.user_id, u.name AS author_name,
	m.content, m.is_pinned, m.is_muted, m.created_at, m.expires_at`

type MessageRepository interface {
	FindByID(ctx context.Context, id string) (*model.Message, error)
	FindByCohortID(ctx context.Context, cohortID string) ([]model.Message, error)
	Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error)
	SetPinned(ctx context.Context, id string, pinned bool) error
	SetMuted(ctx context.Context, id string, muted bool) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type messageRepo struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) FindByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.GetContext(ctx, &msg, `
		SELECT `+messageColumns+`
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1
	`, id)
	return HandleNotFound(&msg, err)
}

func (r *messageRepo) FindByCohortID(ctx context.Context, cohortID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.SelectContext(ctx, &msgs, `
		SELECT `+messageColumns+`
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.cohort_id = $1 AND NOT m.is_muted
		ORDER BY m.created_at ASC
	`, cohortID)
	return msgs, err
}

func (r *messageRepo) Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error) {
	var id string
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO messages (cohort_id, user_id, content, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, params.CohortID, params.UserID, params.Content, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *messageRepo) SetPinned(ctx context.Context, id string, pinned bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET is_pinned = $2 WHERE id = $1`, id, pinned)
	return err
}

func (r *messageRepo) SetMuted(ctx context.Context, id string, muted bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET is_muted = $2 WHERE id = $1`, id, muted)
	return err
}

func (r *messageRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
