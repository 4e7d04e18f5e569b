package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/repository"
)

// CheckInSessionService is the single source of truth for whether a cohort's
// live session is active. Both the facilitator start/stop endpoints and the
// check-in auto-start path go through it, and every state change is announced
// to the cohort room.
//
// Two concurrent starts are resolved by the storage layer's one-active-
// session-per-cohort index, not by in-process locking: the losing insert
// comes back empty and the winner's row is re-read.
type CheckInSessionService struct {
	sessionRepo repository.CheckInSessionRepository
	notifier    RealtimeNotifier
}

func NewCheckInSessionService(
	sessionRepo repository.CheckInSessionRepository,
	notifier RealtimeNotifier,
) *CheckInSessionService {
	return &CheckInSessionService{
		sessionRepo: sessionRepo,
		notifier:    notifier,
	}
}

// Start activates a session for the cohort. If one is already active it is
// returned unchanged and no broadcast fires. The bool reports whether a new
// session was created.
func (s *CheckInSessionService) Start(ctx context.Context, cohortID, userID string) (*model.CheckInSession, bool, error) {
	existing, err := s.sessionRepo.FindActiveByCohortID(ctx, cohortID)
	if err != nil {
		return nil, false, fmt.Errorf("find active session: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	session, err := s.sessionRepo.CreateActive(ctx, cohortID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("create session: %w", err)
	}
	if session == nil {
		// Lost the race against a concurrent start; the winner already
		// broadcast the state change.
		session, err = s.sessionRepo.FindActiveByCohortID(ctx, cohortID)
		if err != nil {
			return nil, false, fmt.Errorf("find active session after conflict: %w", err)
		}
		if session == nil {
			return nil, false, apperrors.Internal("Session vanished during start")
		}
		return session, false, nil
	}

	log.Info().
		Str("cohortId", cohortID).
		Str("startedBy", userID).
		Str("sessionId", session.ID).
		Msg("check-in session started")

	s.notifier.NotifySession(cohortID, true)
	return session, true, nil
}

// Stop deactivates the cohort's session. With no active session it returns a
// not-found error and emits no broadcast.
func (s *CheckInSessionService) Stop(ctx context.Context, cohortID string) (*model.CheckInSession, error) {
	active, err := s.sessionRepo.FindActiveByCohortID(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("find active session: %w", err)
	}
	if active == nil {
		return nil, apperrors.NotFound("Active session")
	}

	ended, err := s.sessionRepo.End(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	if ended == nil {
		// Ended by a concurrent stop between the read and the update.
		return nil, apperrors.NotFound("Active session")
	}

	log.Info().
		Str("cohortId", cohortID).
		Str("sessionId", ended.ID).
		Msg("check-in session stopped")

	s.notifier.NotifySession(cohortID, false)
	return ended, nil
}

// AutoStart is invoked when a check-in lands for a cohort with no active
// session: the first submission of the day opens the room.
func (s *CheckInSessionService) AutoStart(ctx context.Context, cohortID, userID string) (*model.CheckInSession, error) {
	session, created, err := s.Start(ctx, cohortID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info().
			Str("cohortId", cohortID).
			Str("userId", userID).
			Msg("check-in session auto-started by check-in")
	}
	return session, nil
}

func (s *CheckInSessionService) ActiveSession(ctx context.Context, cohortID string) (*model.CheckInSession, error) {
	return s.sessionRepo.FindActiveByCohortID(ctx, cohortID)
}
