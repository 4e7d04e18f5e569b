package handler

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
)

// withUser injects an authenticated user the way the auth middleware does.
func withUser(r *http.Request, user *model.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, user)
	return r.WithContext(ctx)
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

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyMessage(cohortID string, msg *model.Message) {
	m.Called(cohortID, msg)
}

func (m *mockNotifier) NotifySession(cohortID string, active bool) {
	m.Called(cohortID, active)
}
