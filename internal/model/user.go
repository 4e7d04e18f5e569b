package model

import "time"

type User struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	IsVerified   bool       `db:"is_verified" json:"isVerified"`
	VerifiedAt   *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`

	// Verification token columns, never serialized. The raw token is only
	// ever emailed; the database holds its SHA-256 hash.
	VerificationTokenHash    *string    `db:"verification_token_hash" json:"-"`
	VerificationTokenExpires *time.Time `db:"verification_token_expires" json:"-"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
}
