package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type CohortRepository interface {
	FindByID(ctx context.Context, id string) (*model.Cohort, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Cohort, error)
	FindByUser(ctx context.Context, userID string) ([]model.Cohort, error)
	FindMembers(ctx context.Context, cohortID string) ([]model.Member, error)
	Create(ctx context.Context, params model.CreateCohortParams) (*model.Cohort, error)
	AddMember(ctx context.Context, cohortID, userID string) error
	IsMember(ctx context.Context, cohortID, userID string) (bool, error)
}

type cohortRepo struct {
	db *sqlx.DB
}

func NewCohortRepository(db *sqlx.DB) CohortRepository {
	return &cohortRepo{db: db}
}

func (r *cohortRepo) FindByID(ctx context.Context, id string) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.db.GetContext(ctx, &cohort, `SELECT * FROM cohorts WHERE id = $1`, id)
	return HandleNotFound(&cohort, err)
}

func (r *cohortRepo) FindByInviteCode(ctx context.Context, code string) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.db.GetContext(ctx, &cohort, `SELECT * FROM cohorts WHERE invite_code = $1`, code)
	return HandleNotFound(&cohort, err)
}

func (r *cohortRepo) FindByUser(ctx context.Context, userID string) ([]model.Cohort, error) {
	var cohorts []model.Cohort
	err := r.db.SelectContext(ctx, &cohorts, `
		SELECT c.* FROM cohorts c
		WHERE c.facilitator_id = $1
		   OR EXISTS (SELECT 1 FROM cohort_members cm WHERE cm.cohort_id = c.id AND cm.user_id = $1)
		ORDER BY c.created_at DESC
	`, userID)
	return cohorts, err
}

func (r *cohortRepo) FindMembers(ctx context.Context, cohortID string) ([]model.Member, error) {
	var members []model.Member
	err := r.db.SelectContext(ctx, &members, `
		SELECT u.id, u.name FROM users u
		JOIN cohort_members cm ON cm.user_id = u.id
		WHERE cm.cohort_id = $1
		ORDER BY cm.joined_at ASC
	`, cohortID)
	return members, err
}

func (r *cohortRepo) Create(ctx context.Context, params model.CreateCohortParams) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.db.GetContext(ctx, &cohort, `
		INSERT INTO cohorts (name, facilitator_id, invite_code, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Name, params.FacilitatorID, params.InviteCode, params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *cohortRepo) AddMember(ctx context.Context, cohortID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cohort_members (cohort_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (cohort_id, user_id) DO NOTHING
	`, cohortID, userID)
	return err
}

func (r *cohortRepo) IsMember(ctx context.Context, cohortID, userID string) (bool, error) {
	var isMember bool
	err := r.db.GetContext(ctx, &isMember, `
		SELECT EXISTS (
			SELECT 1 FROM cohort_members WHERE cohort_id = $1 AND user_id = $2
			UNION
			SELECT 1 FROM cohorts WHERE id = $1 AND facilitator_id = $2
		)
	`, cohortID, userID)
	return isMember, err
}
