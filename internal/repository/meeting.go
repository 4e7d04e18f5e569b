package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type MeetingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Meeting, error)
	FindByCohortID(ctx context.Context, cohortID string) ([]model.Meeting, error)
	Create(ctx context.Context, params model.CreateMeetingParams) (*model.Meeting, error)
	UpsertRSVP(ctx context.Context, meetingID, userID string, status model.RSVPStatus) error
	FindRSVPs(ctx context.Context, meetingID string) ([]model.MeetingRSVP, error)
}

type meetingRepo struct {
	db *sqlx.DB
}

func NewMeetingRepository(db *sqlx.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) FindByID(ctx context.Context, id string) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.GetContext(ctx, &meeting, `SELECT * FROM meetings WHERE id = $1`, id)
	return HandleNotFound(&meeting, err)
}

func (r *meetingRepo) FindByCohortID(ctx context.Context, cohortID string) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.SelectContext(ctx, &meetings, `
		SELECT * FROM meetings
		WHERE cohort_id = $1
		ORDER BY scheduled_at ASC
	`, cohortID)
	return meetings, err
}

func (r *meetingRepo) Create(ctx context.Context, params model.CreateMeetingParams) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.GetContext(ctx, &meeting, `
		INSERT INTO meetings (cohort_id, title, agenda, scheduled_at, duration_minutes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.CohortID, params.Title, params.Agenda, params.ScheduledAt, params.DurationMinutes, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepo) UpsertRSVP(ctx context.Context, meetingID, userID string, status model.RSVPStatus) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meeting_rsvps (meeting_id, user_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id, user_id) DO UPDATE SET status = $3, updated_at = NOW()
	`, meetingID, userID, status)
	return err
}

func (r *meetingRepo) FindRSVPs(ctx context.Context, meetingID string) ([]model.MeetingRSVP, error) {
	var rsvps []model.MeetingRSVP
	err := r.db.SelectContext(ctx, &rsvps, `
		SELECT * FROM meeting_rsvps WHERE meeting_id = $1 ORDER BY updated_at ASC
	`, meetingID)
	return rsvps, err
}
