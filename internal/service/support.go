package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/config"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

// SupportService records peer reactions on goals. The one-per-week rule is
// bucketed by ISO week so a supporter can re-encourage the same goal as the
// program moves on.
type SupportService struct {
	supportRepo repository.SupportRepository
	goalRepo    repository.GoalRepository

	now func() time.Time
}

func NewSupportService(supportRepo repository.SupportRepository, goalRepo repository.GoalRepository) *SupportService {
	return &SupportService{
		supportRepo: supportRepo,
		goalRepo:    goalRepo,
		now:         time.Now,
	}
}

func (s *SupportService) Add(ctx context.Context, goalID, userID string, supportType model.SupportType, message *string) (*model.Support, error) {
	if !supportType.Valid() {
		return nil, apperrors.InvalidInput("type", "must be support, help, or endorse")
	}
	if message != nil && len(*message) > config.MaxSupportMessageLength {
		return nil, apperrors.InvalidInput("message", fmt.Sprintf("must be at most %d characters", config.MaxSupportMessageLength))
	}

	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if goal == nil {
		return nil, apperrors.NotFound("Goal")
	}

	week := s.currentWeek()
	existing, err := s.supportRepo.FindByGoalUserWeek(ctx, goalID, userID, week)
	if err != nil {
		return nil, fmt.Errorf("find existing support: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Support for this goal this week")
	}

	support, err := s.supportRepo.Create(ctx, model.CreateSupportParams{
		GoalID:     goalID,
		UserID:     userID,
		Type:       supportType,
		Message:    message,
		WeekNumber: week,
	})
	if err != nil {
		return nil, fmt.Errorf("create support: %w", err)
	}
	if support == nil {
		// Lost a race against a concurrent duplicate; the unique index
		// swallowed the insert.
		return nil, apperrors.AlreadyExists("Support for this goal this week")
	}

	log.Info().
		Str("goalId", goalID).
		Str("userId", userID).
		Str("type", string(supportType)).
		Msg("goal support added")

	return support, nil
}

func (s *SupportService) ListForGoal(ctx context.Context, goalID string) ([]model.Support, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if goal == nil {
		return nil, apperrors.NotFound("Goal")
	}

	return s.supportRepo.FindByGoalID(ctx, goalID)
}

func (s *SupportService) currentWeek() int {
	_, week := s.now().ISOWeek()
	return week
}
