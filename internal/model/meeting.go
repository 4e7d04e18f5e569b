package model

import "time"

type Meeting struct {
	ID              string    `db:"id" json:"id"`
	CohortID        string    `db:"cohort_id" json:"cohortId"`
	Title           string    `db:"title" json:"title"`
	Agenda          *string   `db:"agenda" json:"agenda,omitempty"`
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduledAt"`
	DurationMinutes int       `db:"duration_minutes" json:"durationMinutes"`
	CreatedBy       string    `db:"created_by" json:"createdBy"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

type MeetingRSVP struct {
	MeetingID string     `db:"meeting_id" json:"meetingId"`
	UserID    string     `db:"user_id" json:"userId"`
	Status    RSVPStatus `db:"status" json:"status"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateMeetingParams struct {
	CohortID        string
	Title           string
	Agenda          *string
	ScheduledAt     time.Time
	DurationMinutes int
	CreatedBy       string
}
