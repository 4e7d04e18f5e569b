package model

import "time"

type CheckIn struct {
	ID          string        `db:"id" json:"id"`
	UserID      string        `db:"user_id" json:"userId"`
	GoalID      string        `db:"goal_id" json:"goalId"`
	WeekNumber  int           `db:"week_number" json:"weekNumber"`
	Status      CheckInStatus `db:"status" json:"status"`
	BlockerNote *string       `db:"blocker_note" json:"blockerNote,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
}

type CreateCheckInParams struct {
	UserID      string
	GoalID      string
	WeekNumber  int
	Status      CheckInStatus
	BlockerNote *string
}
