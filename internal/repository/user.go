package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByVerificationTokenHash(ctx context.Context, hash string) (*model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	UpdateName(ctx context.Context, id, name string) error
	SetVerificationToken(ctx context.Context, id, hash string, expires time.Time) error
	MarkVerified(ctx context.Context, id string) error
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE lower(email) = lower($1)`, email)
	return HandleNotFound(&user, err)
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Name, params.Email, params.PasswordHash, params.Role)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = $2 WHERE id = $1`, id, name)
	return err
}

func (r *userRepo) FindByVerificationTokenHash(ctx context.Context, hash string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE verification_token_hash = $1`, hash)
	return HandleNotFound(&user, err)
}

func (r *userRepo) SetVerificationToken(ctx context.Context, id, hash string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verification_token_hash = $2, verification_token_expires = $3
		WHERE id = $1
	`, id, hash, expires)
	return err
}

func (r *userRepo) MarkVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_verified = TRUE,
		    verified_at = NOW(),
		    verification_token_hash = NULL,
		    verification_token_expires = NULL
		WHERE id = $1
	`, id)
	return err
}
