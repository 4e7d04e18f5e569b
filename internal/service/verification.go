package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/config"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/mail"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
	"github.com/ziptechlabs/cohort-server-go/internal/util"
)

// VerificationService manages single-use email verification links. The raw
// token goes out by email only; the database stores its hash, so a leaked
// dump cannot be replayed into verified accounts.
type VerificationService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer

	now func() time.Time
}

func NewVerificationService(userRepo repository.UserRepository, mailer mail.Mailer) *VerificationService {
	return &VerificationService{
		userRepo: userRepo,
		mailer:   mailer,
		now:      time.Now,
	}
}

// Send issues a fresh verification token and emails it. The bool reports
// whether an email went out; an already-verified user short-circuits.
func (s *VerificationService) Send(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return false, apperrors.NotFound("User")
	}
	if user.IsVerified {
		return false, nil
	}

	token, err := util.GenerateToken(config.VerificationTokenBytes)
	if err != nil {
		return false, fmt.Errorf("generate verification token: %w", err)
	}

	expires := s.now().Add(config.VerificationTokenTTL)
	if err := s.userRepo.SetVerificationToken(ctx, user.ID, util.HashToken(token), expires); err != nil {
		return false, fmt.Errorf("store verification token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		return false, fmt.Errorf("deliver verification email: %w", err)
	}

	log.Info().Str("userId", user.ID).Msg("verification email sent")
	return true, nil
}

// Confirm validates a token from a verification link and marks the user
// verified. Reissuing a token invalidates any earlier link.
func (s *VerificationService) Confirm(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationTokenHash(ctx, util.HashToken(token))
	if err != nil {
		return fmt.Errorf("find user by token: %w", err)
	}
	if user == nil {
		return apperrors.InvalidToken("Invalid verification link")
	}
	if user.VerificationTokenExpires == nil || user.VerificationTokenExpires.Before(s.now()) {
		return apperrors.TokenExpired("Verification link expired")
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	log.Info().Str("userId", user.ID).Msg("email verified")
	return nil
}
