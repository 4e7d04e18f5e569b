package model

import "time"

// CheckInSession is the live-session flag for one cohort. At most one row per
// cohort may have active=true, enforced by a partial unique index.
type CheckInSession struct {
	ID        string     `db:"id" json:"id"`
	CohortID  string     `db:"cohort_id" json:"cohortId"`
	Active    bool       `db:"active" json:"active"`
	StartedBy string     `db:"started_by" json:"startedBy"`
	StartedAt time.Time  `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
