package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type AnalyticsRepository interface {
	CohortStats(ctx context.Context, cohortID string) (*model.CohortStats, error)
	AdminStats(ctx context.Context) (*model.AdminStats, error)
	CohortSummaries(ctx context.Context) ([]model.CohortSummary, error)
}

type analyticsRepo struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) CohortStats(ctx context.Context, cohortID string) (*model.CohortStats, error) {
	var stats model.CohortStats
	err := r.db.GetContext(ctx, &stats, `
		WITH members AS (
			SELECT user_id FROM cohort_members WHERE cohort_id = $1
		)
		SELECT
			(SELECT COUNT(*) FROM members) AS member_count,
			(SELECT COUNT(*) FROM goals g WHERE g.user_id IN (SELECT user_id FROM members)) AS total_goals,
			(SELECT COUNT(*) FROM check_ins c
				JOIN goals g ON g.id = c.goal_id
				WHERE g.user_id IN (SELECT user_id FROM members) AND c.status = 'done') AS completed_goals,
			(SELECT COUNT(DISTINCT g.user_id) FROM goals g
				WHERE g.user_id IN (SELECT user_id FROM members)) AS users_with_goals,
			(SELECT COUNT(*) FROM check_ins c
				JOIN goals g ON g.id = c.goal_id
				WHERE g.user_id IN (SELECT user_id FROM members)) AS total_check_ins
	`, cohortID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *analyticsRepo) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM cohorts) AS total_cohorts,
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(DISTINCT user_id) FROM goals
				WHERE created_at > NOW() - INTERVAL '7 days') AS active_users,
			(SELECT COUNT(*) FROM goals) AS total_goals,
			(SELECT COUNT(*) FROM check_ins WHERE status = 'done') AS completed_goals
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *analyticsRepo) CohortSummaries(ctx context.Context) ([]model.CohortSummary, error) {
	var summaries []model.CohortSummary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT c.id, c.name,
			(SELECT COUNT(*) FROM cohort_members cm WHERE cm.cohort_id = c.id) AS member_count
		FROM cohorts c
		ORDER BY c.created_at DESC
	`)
	return summaries, err
}
