package model

import "time"

// Support is one peer reaction to a goal: encouragement, an offer to help,
// or an endorsement. A user may leave at most one per goal per week.
type Support struct {
	ID            string      `db:"id" json:"id"`
	GoalID        string      `db:"goal_id" json:"goalId"`
	UserID        string      `db:"user_id" json:"userId"`
	SupporterName string      `db:"supporter_name" json:"supporterName"`
	Type          SupportType `db:"type" json:"type"`
	Message       *string     `db:"message" json:"message,omitempty"`
	WeekNumber    int         `db:"week_number" json:"weekNumber"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
}

type CreateSupportParams struct {
	GoalID     string
	UserID     string
	Type       SupportType
	Message    *string
	WeekNumber int
}
