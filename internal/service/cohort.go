package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/config"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
	"github.com/ziptechlabs/cohort-server-go/internal/util"
)

type CohortService struct {
	cohortRepo repository.CohortRepository
}

func NewCohortService(cohortRepo repository.CohortRepository) *CohortService {
	return &CohortService{cohortRepo: cohortRepo}
}

type CreateCohortParams struct {
	Name          string
	FacilitatorID string
	StartDate     time.Time
	EndDate       *time.Time
}

// Create sets up a cohort with a fresh invite code. Facilitators and admins
// only.
func (s *CohortService) Create(ctx context.Context, actor *model.User, params CreateCohortParams) (*model.Cohort, error) {
	if !actor.Role.IsModerator() {
		return nil, apperrors.Forbidden("Only facilitators can create cohorts")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if len(name) > config.MaxCohortNameLength {
		return nil, apperrors.InvalidInput("name", fmt.Sprintf("must be at most %d characters", config.MaxCohortNameLength))
	}

	code, err := util.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	cohort, err := s.cohortRepo.Create(ctx, model.CreateCohortParams{
		Name:          name,
		FacilitatorID: params.FacilitatorID,
		InviteCode:    code,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create cohort: %w", err)
	}

	log.Info().
		Str("cohortId", cohort.ID).
		Str("facilitatorId", cohort.FacilitatorID).
		Msg("cohort created")

	return cohort, nil
}

func (s *CohortService) ListForUser(ctx context.Context, userID string) ([]model.Cohort, error) {
	return s.cohortRepo.FindByUser(ctx, userID)
}

type CohortDetail struct {
	Cohort  *model.Cohort  `json:"cohort"`
	Members []model.Member `json:"members"`
}

// Get returns a cohort with its member roster. Members and the facilitator
// only.
func (s *CohortService) Get(ctx context.Context, cohortID, userID string) (*CohortDetail, error) {
	cohort, err := s.cohortRepo.FindByID(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("find cohort: %w", err)
	}
	if cohort == nil {
		return nil, apperrors.NotFound("Cohort")
	}

	isMember, err := s.cohortRepo.IsMember(ctx, cohortID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, apperrors.NotAMember()
	}

	members, err := s.cohortRepo.FindMembers(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return &CohortDetail{Cohort: cohort, Members: members}, nil
}

// Join adds the user to the cohort matching the invite code. Joining twice is
// a no-op at the store level.
func (s *CohortService) Join(ctx context.Context, userID, inviteCode string) (*model.Cohort, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, apperrors.MissingRequired("inviteCode")
	}

	cohort, err := s.cohortRepo.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find cohort by invite code: %w", err)
	}
	if cohort == nil {
		return nil, apperrors.InvalidInviteCode()
	}

	if err := s.cohortRepo.AddMember(ctx, cohort.ID, userID); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	log.Info().
		Str("cohortId", cohort.ID).
		Str("userId", userID).
		Msg("user joined cohort")

	return cohort, nil
}

func (s *CohortService) Members(ctx context.Context, cohortID, userID string) ([]model.Member, error) {
	detail, err := s.Get(ctx, cohortID, userID)
	if err != nil {
		return nil, err
	}
	return detail.Members, nil
}
