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
)

type MessageService struct {
	messageRepo repository.MessageRepository
	cohortRepo  repository.CohortRepository
	sessionRepo repository.CheckInSessionRepository
	notifier    RealtimeNotifier
	checkInDay  time.Weekday
	messageTTL  time.Duration
	now         func() time.Time
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	cohortRepo repository.CohortRepository,
	sessionRepo repository.CheckInSessionRepository,
	notifier RealtimeNotifier,
	checkInDay time.Weekday,
	messageTTL time.Duration,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		cohortRepo:  cohortRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
		checkInDay:  checkInDay,
		messageTTL:  messageTTL,
		now:         time.Now,
	}
}

func (s *MessageService) isCheckInDay() bool {
	return s.now().Weekday() == s.checkInDay
}

// Send persists a chat message and relays it to the cohort room. Sending is
// gated: the author must be a member (or the facilitator), and chat is open
// only on the check-in day or while a session is active. The broadcast fires
// strictly after the store confirms the write.
func (s *MessageService) Send(ctx context.Context, cohortID, userID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.MissingRequired("content")
	}
	if len(content) > config.MaxMessageLength {
		return nil, apperrors.InvalidInput("content", fmt.Sprintf("must be at most %d characters", config.MaxMessageLength))
	}

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

	if !s.isCheckInDay() {
		active, err := s.sessionRepo.FindActiveByCohortID(ctx, cohortID)
		if err != nil {
			return nil, fmt.Errorf("find active session: %w", err)
		}
		if active == nil {
			return nil, apperrors.ChatClosed()
		}
	}

	msg, err := s.messageRepo.Create(ctx, model.CreateMessageParams{
		CohortID:  cohortID,
		UserID:    userID,
		Content:   content,
		ExpiresAt: s.now().Add(s.messageTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.notifier.NotifyMessage(cohortID, msg)

	log.Info().
		Str("messageId", msg.ID).
		Str("cohortId", cohortID).
		Str("userId", userID).
		Msg("chat message sent")

	return msg, nil
}

type MessageListResult struct {
	Messages     []model.Message `json:"messages"`
	IsCheckInDay bool            `json:"isCheckInDay"`
}

// List returns the cohort's visible (non-muted) messages oldest first.
// Expired rows are reaped lazily by the cleanup job, so expiresAt is
// advisory for display.
func (s *MessageService) List(ctx context.Context, cohortID, userID string) (*MessageListResult, error) {
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

	messages, err := s.messageRepo.FindByCohortID(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return &MessageListResult{
		Messages:     messages,
		IsCheckInDay: s.isCheckInDay(),
	}, nil
}

// TogglePin flips a message's pinned flag. Facilitators and admins only.
func (s *MessageService) TogglePin(ctx context.Context, messageID string, actor *model.User) (*model.Message, error) {
	return s.toggleFlag(ctx, messageID, actor, "pin")
}

// ToggleMute flips a message's muted flag, hiding or restoring it in
// listings. Facilitators and admins only.
func (s *MessageService) ToggleMute(ctx context.Context, messageID string, actor *model.User) (*model.Message, error) {
	return s.toggleFlag(ctx, messageID, actor, "mute")
}

func (s *MessageService) toggleFlag(ctx context.Context, messageID string, actor *model.User, flag string) (*model.Message, error) {
	if !actor.Role.IsModerator() {
		return nil, apperrors.Forbidden("Not authorized")
	}

	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	if msg == nil {
		return nil, apperrors.NotFound("Message")
	}

	switch flag {
	case "pin":
		msg.IsPinned = !msg.IsPinned
		err = s.messageRepo.SetPinned(ctx, messageID, msg.IsPinned)
	case "mute":
		msg.IsMuted = !msg.IsMuted
		err = s.messageRepo.SetMuted(ctx, messageID, msg.IsMuted)
	}
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}

	return msg, nil
}
