package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

// SessionStarter is the slice of the session coordinator the check-in flow
// needs: open a session when a check-in arrives and none is running.
type SessionStarter interface {
	AutoStart(ctx context.Context, cohortID, userID string) (*model.CheckInSession, error)
}

type CheckInService struct {
	checkInRepo repository.CheckInRepository
	goalRepo    repository.GoalRepository
	sessions    SessionStarter
}

func NewCheckInService(
	checkInRepo repository.CheckInRepository,
	goalRepo repository.GoalRepository,
	sessions SessionStarter,
) *CheckInService {
	return &CheckInService{
		checkInRepo: checkInRepo,
		goalRepo:    goalRepo,
		sessions:    sessions,
	}
}

type CreateCheckInParams struct {
	UserID      string
	GoalID      string
	Status      model.CheckInStatus
	BlockerNote *string
}

// Create records a check-in for a goal: one per goal, owner only. The goal's
// status is updated to match, and a session is auto-started for the goal's
// cohort when none is active.
func (s *CheckInService) Create(ctx context.Context, params CreateCheckInParams) (*model.CheckIn, error) {
	if !params.Status.Valid() {
		return nil, apperrors.InvalidInput("status", "must be done, partial or not_done")
	}

	goal, err := s.goalRepo.FindByID(ctx, params.GoalID)
	if err != nil {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if goal == nil {
		return nil, apperrors.NotFound("Goal")
	}
	if goal.UserID != params.UserID {
		return nil, apperrors.Forbidden("Goal belongs to another user")
	}

	existing, err := s.checkInRepo.FindByGoalID(ctx, params.GoalID)
	if err != nil {
		return nil, fmt.Errorf("find existing check-in: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyCheckedIn()
	}

	checkIn, err := s.checkInRepo.Create(ctx, model.CreateCheckInParams{
		UserID:      params.UserID,
		GoalID:      params.GoalID,
		WeekNumber:  goal.WeekNumber,
		Status:      params.Status,
		BlockerNote: params.BlockerNote,
	})
	if err != nil {
		return nil, fmt.Errorf("create check-in: %w", err)
	}

	if err := s.goalRepo.UpdateStatus(ctx, goal.ID, model.GoalStatus(params.Status)); err != nil {
		log.Warn().Err(err).Str("goalId", goal.ID).Msg("failed to sync goal status after check-in")
	}

	// The check-in itself is already durable; a failed auto-start only
	// delays the session until the facilitator opens it by hand.
	if _, err := s.sessions.AutoStart(ctx, goal.CohortID, params.UserID); err != nil {
		log.Error().Err(err).Str("cohortId", goal.CohortID).Msg("failed to auto-start session for check-in")
	}

	log.Info().
		Str("checkInId", checkIn.ID).
		Str("goalId", goal.ID).
		Str("status", string(params.Status)).
		Msg("check-in recorded")

	return checkIn, nil
}

func (s *CheckInService) ListForUser(ctx context.Context, userID string) ([]model.CheckIn, error) {
	return s.checkInRepo.FindByUser(ctx, userID)
}
