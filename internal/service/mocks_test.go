package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockUserRepo) FindByVerificationTokenHash(ctx context.Context, hash string) (*model.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) SetVerificationToken(ctx context.Context, id, hash string, expires time.Time) error {
	args := m.Called(ctx, id, hash, expires)
	return args.Error(0)
}

func (m *mockUserRepo) MarkVerified(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCohortRepo struct {
	mock.Mock
}

func (m *mockCohortRepo) FindByID(ctx context.Context, id string) (*model.Cohort, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cohort), args.Error(1)
}

func (m *mockCohortRepo) FindByInviteCode(ctx context.Context, code string) (*model.Cohort, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cohort), args.Error(1)
}

func (m *mockCohortRepo) FindByUser(ctx context.Context, userID string) ([]model.Cohort, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cohort), args.Error(1)
}

func (m *mockCohortRepo) FindMembers(ctx context.Context, cohortID string) ([]model.Member, error) {
	args := m.Called(ctx, cohortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *mockCohortRepo) Create(ctx context.Context, params model.CreateCohortParams) (*model.Cohort, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cohort), args.Error(1)
}

func (m *mockCohortRepo) AddMember(ctx context.Context, cohortID, userID string) error {
	args := m.Called(ctx, cohortID, userID)
	return args.Error(0)
}

func (m *mockCohortRepo) IsMember(ctx context.Context, cohortID, userID string) (bool, error) {
	args := m.Called(ctx, cohortID, userID)
	return args.Bool(0), args.Error(1)
}

type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id string) (*model.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUserWeek(ctx context.Context, userID string, weekNumber int) ([]model.Goal, error) {
	args := m.Called(ctx, userID, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUserWeekType(ctx context.Context, userID string, weekNumber int, goalType model.GoalType) (*model.Goal, error) {
	args := m.Called(ctx, userID, weekNumber, goalType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *mockGoalRepo) Create(ctx context.Context, params model.CreateGoalParams) (*model.Goal, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *mockGoalRepo) UpdateStatus(ctx context.Context, id string, status model.GoalStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockCheckInRepo struct {
	mock.Mock
}

func (m *mockCheckInRepo) FindByGoalID(ctx context.Context, goalID string) (*model.CheckIn, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) FindByUser(ctx context.Context, userID string) ([]model.CheckIn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) Create(ctx context.Context, params model.CreateCheckInParams) (*model.CheckIn, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckIn), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindActiveByCohortID(ctx context.Context, cohortID string) (*model.CheckInSession, error) {
	args := m.Called(ctx, cohortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInSession), args.Error(1)
}

func (m *mockSessionRepo) CreateActive(ctx context.Context, cohortID, startedBy string) (*model.CheckInSession, error) {
	args := m.Called(ctx, cohortID, startedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInSession), args.Error(1)
}

func (m *mockSessionRepo) End(ctx context.Context, id string) (*model.CheckInSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInSession), args.Error(1)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id string) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessageRepo) FindByCohortID(ctx context.Context, cohortID string) ([]model.Message, error) {
	args := m.Called(ctx, cohortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *mockMessageRepo) Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessageRepo) SetPinned(ctx context.Context, id string, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

func (m *mockMessageRepo) SetMuted(ctx context.Context, id string, muted bool) error {
	args := m.Called(ctx, id, muted)
	return args.Error(0)
}

func (m *mockMessageRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockMeetingRepo struct {
	mock.Mock
}

func (m *mockMeetingRepo) FindByID(ctx context.Context, id string) (*model.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) FindByCohortID(ctx context.Context, cohortID string) ([]model.Meeting, error) {
	args := m.Called(ctx, cohortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) Create(ctx context.Context, params model.CreateMeetingParams) (*model.Meeting, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) UpsertRSVP(ctx context.Context, meetingID, userID string, status model.RSVPStatus) error {
	args := m.Called(ctx, meetingID, userID, status)
	return args.Error(0)
}

func (m *mockMeetingRepo) FindRSVPs(ctx context.Context, meetingID string) ([]model.MeetingRSVP, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MeetingRSVP), args.Error(1)
}

type mockSupportRepo struct {
	mock.Mock
}

func (m *mockSupportRepo) FindByGoalUserWeek(ctx context.Context, goalID, userID string, weekNumber int) (*model.Support, error) {
	args := m.Called(ctx, goalID, userID, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Support), args.Error(1)
}

func (m *mockSupportRepo) FindByGoalID(ctx context.Context, goalID string) ([]model.Support, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Support), args.Error(1)
}

func (m *mockSupportRepo) Create(ctx context.Context, params model.CreateSupportParams) (*model.Support, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Support), args.Error(1)
}

type mockAnalyticsRepo struct {
	mock.Mock
}

func (m *mockAnalyticsRepo) CohortStats(ctx context.Context, cohortID string) (*model.CohortStats, error) {
	args := m.Called(ctx, cohortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CohortStats), args.Error(1)
}

func (m *mockAnalyticsRepo) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

func (m *mockAnalyticsRepo) CohortSummaries(ctx context.Context) ([]model.CohortSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CohortSummary), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerification(ctx context.Context, to, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyMessage(cohortID string, msg *model.Message) {
	m.Called(cohortID, msg)
}

func (m *mockNotifier) NotifySession(cohortID string, active bool) {
	m.Called(cohortID, active)
}

type mockSessionStarter struct {
	mock.Mock
}

func (m *mockSessionStarter) AutoStart(ctx context.Context, cohortID, userID string) (*model.CheckInSession, error) {
	args := m.Called(ctx, cohortID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInSession), args.Error(1)
}
