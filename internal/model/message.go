package model

import "time"

type Message struct {
	ID         string    `db:"id" json:"id"`
	CohortID   string    `db:"cohort_id" json:"cohortId"`
	UserID     string    `db:"user_id" json:"userId"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Content    string    `db:"content" json:"content"`
	IsPinned   bool      `db:"is_pinned" json:"isPinned"`
	IsMuted    bool      `db:"is_muted" json:"isMuted"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt  time.Time `db:"expires_at" json:"expiresAt"`
}

type CreateMessageParams struct {
	CohortID  string
	UserID    string
	Content   string
	ExpiresAt time.Time
}
