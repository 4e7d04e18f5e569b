package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

type MeetingService struct {
	meetingRepo repository.MeetingRepository
	cohortRepo  repository.CohortRepository
}

func NewMeetingService(meetingRepo repository.MeetingRepository, cohortRepo repository.CohortRepository) *MeetingService {
	return &MeetingService{meetingRepo: meetingRepo, cohortRepo: cohortRepo}
}

type CreateMeetingParams struct {
	CohortID        string
	Title           string
	Agenda          *string
	ScheduledAt     time.Time
	DurationMinutes int
	CreatedBy       string
}

// Create schedules a meeting for a cohort. Facilitators and admins only.
func (s *MeetingService) Create(ctx context.Context, actor *model.User, params CreateMeetingParams) (*model.Meeting, error) {
	if !actor.Role.IsModerator() {
		return nil, apperrors.Forbidden("Only facilitators can schedule meetings")
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if params.ScheduledAt.IsZero() {
		return nil, apperrors.MissingRequired("scheduledAt")
	}
	if params.DurationMinutes <= 0 {
		params.DurationMinutes = 60
	}

	cohort, err := s.cohortRepo.FindByID(ctx, params.CohortID)
	if err != nil {
		return nil, fmt.Errorf("find cohort: %w", err)
	}
	if cohort == nil {
		return nil, apperrors.NotFound("Cohort")
	}

	meeting, err := s.meetingRepo.Create(ctx, model.CreateMeetingParams{
		CohortID:        params.CohortID,
		Title:           title,
		Agenda:          params.Agenda,
		ScheduledAt:     params.ScheduledAt,
		DurationMinutes: params.DurationMinutes,
		CreatedBy:       params.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	log.Info().
		Str("meetingId", meeting.ID).
		Str("cohortId", meeting.CohortID).
		Time("scheduledAt", meeting.ScheduledAt).
		Msg("meeting scheduled")

	return meeting, nil
}

func (s *MeetingService) ListForCohort(ctx context.Context, cohortID, userID string) ([]model.Meeting, error) {
	isMember, err := s.cohortRepo.IsMember(ctx, cohortID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, apperrors.NotAMember()
	}
	return s.meetingRepo.FindByCohortID(ctx, cohortID)
}

// RSVP records or updates the user's attendance answer for a meeting.
func (s *MeetingService) RSVP(ctx context.Context, meetingID, userID string, status model.RSVPStatus) error {
	if !status.Valid() {
		return apperrors.InvalidInput("status", "must be yes, no or maybe")
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("find meeting: %w", err)
	}
	if meeting == nil {
		return apperrors.NotFound("Meeting")
	}

	isMember, err := s.cohortRepo.IsMember(ctx, meeting.CohortID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return apperrors.NotAMember()
	}

	if err := s.meetingRepo.UpsertRSVP(ctx, meetingID, userID, status); err != nil {
		return fmt.Errorf("upsert rsvp: %w", err)
	}
	return nil
}

func (s *MeetingService) RSVPs(ctx context.Context, meetingID, userID string) ([]model.MeetingRSVP, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("find meeting: %w", err)
	}
	if meeting == nil {
		return nil, apperrors.NotFound("Meeting")
	}

	isMember, err := s.cohortRepo.IsMember(ctx, meeting.CohortID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, apperrors.NotAMember()
	}

	return s.meetingRepo.FindRSVPs(ctx, meetingID)
}
