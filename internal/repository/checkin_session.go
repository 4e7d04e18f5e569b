package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type CheckInSessionRepository interface {
	FindActiveByCohortID(ctx context.Context, cohortID string) (*model.CheckInSession, error)
	// CreateActive inserts a new active session for the cohort. When another
	// active session already exists the partial unique index makes the insert
	// a no-op and (nil, nil) is returned; callers re-read the active session.
	CreateActive(ctx context.Context, cohortID, startedBy string) (*model.CheckInSession, error)
	End(ctx context.Context, id string) (*model.CheckInSession, error)
}

type checkInSessionRepo struct {
	db *sqlx.DB
}

func NewCheckInSessionRepository(db *sqlx.DB) CheckInSessionRepository {
	return &checkInSessionRepo{db: db}
}

func (r *checkInSessionRepo) FindActiveByCohortID(ctx context.Context, cohortID string) (*model.CheckInSession, error) {
	var session model.CheckInSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM checkin_sessions
		WHERE cohort_id = $1 AND active
	`, cohortID)
	return HandleNotFound(&session, err)
}

func (r *checkInSessionRepo) CreateActive(ctx context.Context, cohortID, startedBy string) (*model.CheckInSession, error) {
	var session model.CheckInSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO checkin_sessions (cohort_id, started_by, active)
		VALUES ($1, $2, true)
		ON CONFLICT (cohort_id) WHERE active DO NOTHING
		RETURNING *
	`, cohortID, startedBy)
	return HandleNotFound(&session, err)
}

func (r *checkInSessionRepo) End(ctx context.Context, id string) (*model.CheckInSession, error) {
	var session model.CheckInSession
	err := r.db.GetContext(ctx, &session, `
		UPDATE checkin_sessions SET
			active = false,
			ended_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND active
		RETURNING *
	`, id)
	return HandleNotFound(&session, err)
}
