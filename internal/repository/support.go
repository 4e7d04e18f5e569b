package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

const supportColumns = `
	s.id, s.goal_id, s.user_id, u.name AS supporter_name,
	s.type, s.message, s.week_number, s.created_at`

type SupportRepository interface {
	FindByGoalUserWeek(ctx context.Context, goalID, userID string, weekNumber int) (*model.Support, error)
	FindByGoalID(ctx context.Context, goalID string) ([]model.Support, error)
	Create(ctx context.Context, params model.CreateSupportParams) (*model.Support, error)
}

type supportRepo struct {
	db *sqlx.DB
}

func NewSupportRepository(db *sqlx.DB) SupportRepository {
	return &supportRepo{db: db}
}

func (r *supportRepo) FindByGoalUserWeek(ctx context.Context, goalID, userID string, weekNumber int) (*model.Support, error) {
	var support model.Support
	err := r.db.GetContext(ctx, &support, `
		SELECT `+supportColumns+`
		FROM goal_support s
		JOIN users u ON u.id = s.user_id
		WHERE s.goal_id = $1 AND s.user_id = $2 AND s.week_number = $3
	`, goalID, userID, weekNumber)
	return HandleNotFound(&support, err)
}

func (r *supportRepo) FindByGoalID(ctx context.Context, goalID string) ([]model.Support, error) {
	var supports []model.Support
	err := r.db.SelectContext(ctx, &supports, `
		SELECT `+supportColumns+`
		FROM goal_support s
		JOIN users u ON u.id = s.user_id
		WHERE s.goal_id = $1
		ORDER BY s.created_at DESC
	`, goalID)
	return supports, err
}

func (r *supportRepo) Create(ctx context.Context, params model.CreateSupportParams) (*model.Support, error) {
	var id string
	// The unique index on (goal_id, user_id, week_number) backs up the
	// service-level duplicate check; a conflicting insert comes back empty.
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO goal_support (goal_id, user_id, type, message, week_number)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (goal_id, user_id, week_number) DO NOTHING
		RETURNING id
	`, params.GoalID, params.UserID, params.Type, params.Message, params.WeekNumber)
	if handled, herr := HandleNotFound(&id, err); herr != nil || handled == nil {
		return nil, herr
	}
	return r.findByID(ctx, id)
}

func (r *supportRepo) findByID(ctx context.Context, id string) (*model.Support, error) {
	var support model.Support
	err := r.db.GetContext(ctx, &support, `
		SELECT `+supportColumns+`
		FROM goal_support s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`, id)
	return HandleNotFound(&support, err)
}
