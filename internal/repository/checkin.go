package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type CheckInRepository interface {
	FindByGoalID(ctx context.Context, goalID string) (*model.CheckIn, error)
	FindByUser(ctx context.Context, userID string) ([]model.CheckIn, error)
	Create(ctx context.Context, params model.CreateCheckInParams) (*model.CheckIn, error)
}

type checkInRepo struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) CheckInRepository {
	return &checkInRepo{db: db}
}

func (r *checkInRepo) FindByGoalID(ctx context.Context, goalID string) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	err := r.db.GetContext(ctx, &checkIn, `SELECT * FROM checkins WHERE goal_id = $1`, goalID)
	return HandleNotFound(&checkIn, err)
}

func (r *checkInRepo) FindByUser(ctx context.Context, userID string) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	err := r.db.SelectContext(ctx, &checkIns, `
		SELECT * FROM checkins
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return checkIns, err
}

func (r *checkInRepo) Create(ctx context.Context, params model.CreateCheckInParams) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	err := r.db.GetContext(ctx, &checkIn, `
		INSERT INTO checkins (user_id, goal_id, week_number, status, blocker_note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.UserID, params.GoalID, params.WeekNumber, params.Status, params.BlockerNote)
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}
