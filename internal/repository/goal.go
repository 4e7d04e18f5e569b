package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type GoalRepository interface {
	FindByID(ctx context.Context, id string) (*model.Goal, error)
	FindByUser(ctx context.Context, userID string) ([]model.Goal, error)
	FindByUserWeek(ctx context.Context, userID string, weekNumber int) ([]model.Goal, error)
	FindByUserWeekType(ctx context.Context, userID string, weekNumber int, goalType model.GoalType) (*model.Goal, error)
	Create(ctx context.Context, params model.CreateGoalParams) (*model.Goal, error)
	UpdateStatus(ctx context.Context, id string, status model.GoalStatus) error
}

type goalRepo struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) FindByID(ctx context.Context, id string) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.GetContext(ctx, &goal, `SELECT * FROM goals WHERE id = $1`, id)
	return HandleNotFound(&goal, err)
}

func (r *goalRepo) FindByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.db.SelectContext(ctx, &goals, `
		SELECT * FROM goals
		WHERE user_id = $1
		ORDER BY week_number DESC, created_at DESC
	`, userID)
	return goals, err
}

func (r *goalRepo) FindByUserWeek(ctx context.Context, userID string, weekNumber int) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.db.SelectContext(ctx, &goals, `
		SELECT * FROM goals
		WHERE user_id = $1 AND week_number = $2
		ORDER BY created_at ASC
	`, userID, weekNumber)
	return goals, err
}

func (r *goalRepo) FindByUserWeekType(ctx context.Context, userID string, weekNumber int, goalType model.GoalType) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.GetContext(ctx, &goal, `
		SELECT * FROM goals
		WHERE user_id = $1 AND week_number = $2 AND type = $3
	`, userID, weekNumber, goalType)
	return HandleNotFound(&goal, err)
}

func (r *goalRepo) Create(ctx context.Context, params model.CreateGoalParams) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.GetContext(ctx, &goal, `
		INSERT INTO goals (user_id, cohort_id, type, description, week_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.UserID, params.CohortID, params.Type, params.Description, params.WeekNumber)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) UpdateStatus(ctx context.Context, id string, status model.GoalStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE goals SET status = $2 WHERE id = $1`, id, status)
	return err
}
