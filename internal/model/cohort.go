package model

import "time"

type Cohort struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	FacilitatorID string     `db:"facilitator_id" json:"facilitatorId"`
	InviteCode    string     `db:"invite_code" json:"inviteCode"`
	StartDate     time.Time  `db:"start_date" json:"startDate"`
	EndDate       *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// Member is the projection of a cohort member used by member lists and the
// presence channel.
type Member struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type CreateCohortParams struct {
	Name          string
	FacilitatorID string
	InviteCode    string
	StartDate     time.Time
	EndDate       *time.Time
}
