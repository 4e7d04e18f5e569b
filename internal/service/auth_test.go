package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/util"
)

const testJWTSecret = "test-secret-for-auth-tests-only"

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a founder and issues a token", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

		ctx := context.Background()
		created := &model.User{ID: "user-1", Name: "Ada", Email: "ada@example.com", Role: model.RoleFounder}

		userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(p model.CreateUserParams) bool {
			return p.Email == "ada@example.com" && p.Role == model.RoleFounder && p.PasswordHash != "hunter22"
		})).Return(created, nil)

		result, err := svc.Register(ctx, "Ada", "Ada@Example.com", "hunter22", "")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.User.ID)
		assert.NotEmpty(t, result.Token)

		// The token round-trips through verification.
		sub, err := svc.VerifyToken(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", sub)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

		ctx := context.Background()
		userRepo.On("FindByEmail", ctx, "ada@example.com").Return(&model.User{ID: "user-1"}, nil)

		result, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22", "")

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrCodeAlreadyExists, apperrors.GetCode(err))
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := util.HashPassword("hunter22")
	user := &model.User{ID: "user-1", Email: "ada@example.com", PasswordHash: hash, Role: model.RoleFounder}

	t.Run("logs in with correct credentials", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

		ctx := context.Background()
		userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)

		result, err := svc.Login(ctx, "ada@example.com", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.User.ID)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

		ctx := context.Background()
		userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)

		result, err := svc.Login(ctx, "ada@example.com", "wrong")

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

		ctx := context.Background()
		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, nil)

		result, err := svc.Login(ctx, "ghost@example.com", "hunter22")

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), testJWTSecret, time.Hour)

		sub, err := svc.VerifyToken("not-a-jwt")

		assert.Empty(t, sub)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		issuer := NewAuthService(userRepo, testJWTSecret, -time.Minute)
		verifier := NewAuthService(userRepo, testJWTSecret, time.Hour)

		token, err := issuer.issueToken(&model.User{ID: "user-1", Role: model.RoleFounder})
		assert.NoError(t, err)

		sub, err := verifier.VerifyToken(token)

		assert.Empty(t, sub)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		issuer := NewAuthService(new(mockUserRepo), "another-secret-entirely", time.Hour)
		verifier := NewAuthService(new(mockUserRepo), testJWTSecret, time.Hour)

		token, err := issuer.issueToken(&model.User{ID: "user-1", Role: model.RoleFounder})
		assert.NoError(t, err)

		sub, err := verifier.VerifyToken(token)

		assert.Empty(t, sub)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})
}
