package model

import "time"

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	CohortID    string     `db:"cohort_id" json:"cohortId"`
	Type        GoalType   `db:"type" json:"type"`
	Description string     `db:"description" json:"description"`
	Status      GoalStatus `db:"status" json:"status"`
	WeekNumber  int        `db:"week_number" json:"weekNumber"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

type CreateGoalParams struct {
	UserID      string
	CohortID    string
	Type        GoalType
	Description string
	WeekNumber  int
}
