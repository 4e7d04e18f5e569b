package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/config"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

type GoalService struct {
	goalRepo   repository.GoalRepository
	cohortRepo repository.CohortRepository
}

func NewGoalService(goalRepo repository.GoalRepository, cohortRepo repository.CohortRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, cohortRepo: cohortRepo}
}

type CreateGoalParams struct {
	UserID      string
	CohortID    string
	Type        model.GoalType
	Description string
	WeekNumber  int
}

// Create records a goal for the week. One goal per (user, week, type); the
// user must belong to the cohort.
func (s *GoalService) Create(ctx context.Context, params CreateGoalParams) (*model.Goal, error) {
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, apperrors.MissingRequired("description")
	}
	if len(description) > config.MaxGoalLength {
		return nil, apperrors.InvalidInput("description", fmt.Sprintf("must be at most %d characters", config.MaxGoalLength))
	}
	if !params.Type.Valid() {
		return nil, apperrors.InvalidInput("type", "must be public or private")
	}
	if params.WeekNumber < 1 {
		return nil, apperrors.InvalidInput("weekNumber", "must be positive")
	}

	isMember, err := s.cohortRepo.IsMember(ctx, params.CohortID, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, apperrors.NotAMember()
	}

	existing, err := s.goalRepo.FindByUserWeekType(ctx, params.UserID, params.WeekNumber, params.Type)
	if err != nil {
		return nil, fmt.Errorf("find existing goal: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Goal for this week")
	}

	goal, err := s.goalRepo.Create(ctx, model.CreateGoalParams{
		UserID:      params.UserID,
		CohortID:    params.CohortID,
		Type:        params.Type,
		Description: description,
		WeekNumber:  params.WeekNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	log.Info().
		Str("goalId", goal.ID).
		Str("userId", goal.UserID).
		Int("week", goal.WeekNumber).
		Msg("goal created")

	return goal, nil
}

// ListForUser returns the user's goals, optionally narrowed to one week.
func (s *GoalService) ListForUser(ctx context.Context, userID string, week *int) ([]model.Goal, error) {
	if week != nil {
		return s.goalRepo.FindByUserWeek(ctx, userID, *week)
	}
	return s.goalRepo.FindByUser(ctx, userID)
}

// UpdateStatus lets the owner adjust a goal's status directly, outside the
// check-in flow.
func (s *GoalService) UpdateStatus(ctx context.Context, goalID, userID string, status model.GoalStatus) (*model.Goal, error) {
	switch status {
	case model.GoalStatusPending, model.GoalStatusDone, model.GoalStatusPartial, model.GoalStatusNotDone:
	default:
		return nil, apperrors.InvalidInput("status", "must be pending, done, partial or not_done")
	}

	goal, err := s.Get(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.goalRepo.UpdateStatus(ctx, goal.ID, status); err != nil {
		return nil, fmt.Errorf("update goal status: %w", err)
	}
	goal.Status = status

	log.Info().Str("goalId", goal.ID).Str("status", string(status)).Msg("goal status updated")
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, goalID, userID string) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if goal == nil {
		return nil, apperrors.NotFound("Goal")
	}
	if goal.UserID != userID {
		return nil, apperrors.Forbidden("Goal belongs to another user")
	}
	return goal, nil
}
