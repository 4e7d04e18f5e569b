package model

// CohortStats holds the raw per-cohort counters the analytics service turns
// into rates. Counts are over current cohort members only.
type CohortStats struct {
	MemberCount    int `db:"member_count"`
	TotalGoals     int `db:"total_goals"`
	CompletedGoals int `db:"completed_goals"`
	UsersWithGoals int `db:"users_with_goals"`
	TotalCheckIns  int `db:"total_check_ins"`
}

// AdminStats holds the cross-cohort counters for the admin dashboard.
type AdminStats struct {
	TotalCohorts   int `db:"total_cohorts"`
	TotalUsers     int `db:"total_users"`
	ActiveUsers    int `db:"active_users"`
	TotalGoals     int `db:"total_goals"`
	CompletedGoals int `db:"completed_goals"`
}

// CohortSummary is the per-cohort row on the admin dashboard.
type CohortSummary struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	MemberCount int    `db:"member_count" json:"memberCount"`
}
