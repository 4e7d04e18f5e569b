package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

func newSessionTestRouter(sessionRepo *mockSessionRepo, notifier *mockNotifier) http.Handler {
	sessionService := service.NewCheckInSessionService(sessionRepo, notifier)
	return NewCohortHandler(nil, nil, sessionService, nil).Routes()
}

func TestCohortHandlerStartSession(t *testing.T) {
	facilitator := &model.User{ID: "user-f", Role: model.RoleFacilitator}

	t.Run("founders cannot start a session", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/start", nil)
		req = withUser(req, &model.User{ID: "user-1", Role: model.RoleFounder})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
		sessionRepo.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("starting a fresh session returns 201", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(nil, nil)
		sessionRepo.On("CreateActive", mock.Anything, "cohort-1", "user-f").Return(&model.CheckInSession{
			ID: "session-1", CohortID: "cohort-1", Active: true,
		}, nil)
		notifier.On("NotifySession", "cohort-1", true).Return()

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/start", nil)
		req = withUser(req, facilitator)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "session-1")
		notifier.AssertExpectations(t)
	})

	t.Run("starting over an active session returns 200 without a broadcast", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(&model.CheckInSession{
			ID: "session-1", CohortID: "cohort-1", Active: true,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/start", nil)
		req = withUser(req, facilitator)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		sessionRepo.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "NotifySession", mock.Anything, mock.Anything)
	})
}

func TestCohortHandlerStopSession(t *testing.T) {
	facilitator := &model.User{ID: "user-f", Role: model.RoleFacilitator}

	t.Run("founders cannot stop a session", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/stop", nil)
		req = withUser(req, &model.User{ID: "user-1", Role: model.RoleFounder})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
		sessionRepo.AssertNotCalled(t, "End", mock.Anything, mock.Anything)
	})

	t.Run("stopping the active session returns 200", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(&model.CheckInSession{
			ID: "session-1", CohortID: "cohort-1", Active: true,
		}, nil)
		sessionRepo.On("End", mock.Anything, "session-1").Return(&model.CheckInSession{
			ID: "session-1", CohortID: "cohort-1", Active: false,
		}, nil)
		notifier.On("NotifySession", "cohort-1", false).Return()

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/stop", nil)
		req = withUser(req, facilitator)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		notifier.AssertExpectations(t)
	})

	t.Run("stopping with no active session is 404", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newSessionTestRouter(sessionRepo, notifier)

		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/cohort-1/session/stop", nil)
		req = withUser(req, facilitator)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})
}

func newMessageTestRouter(
	messageRepo *mockMessageRepo,
	cohortRepo *mockCohortRepo,
	sessionRepo *mockSessionRepo,
	notifier *mockNotifier,
	checkInDay time.Weekday,
) http.Handler {
	messageService := service.NewMessageService(
		messageRepo, cohortRepo, sessionRepo, notifier, checkInDay, 24*time.Hour,
	)
	return NewCohortHandler(nil, messageService, nil, nil).Routes()
}

func sendMessageRequest(user *model.User, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cohort-1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return withUser(req, user)
}

func TestCohortHandlerSendMessage(t *testing.T) {
	member := &model.User{ID: "user-1", Role: model.RoleFounder}
	cohort := &model.Cohort{ID: "cohort-1", Name: "Spring Batch"}

	// Picking the check-in day relative to the wall clock makes the chat gate
	// deterministic without touching the clock itself.
	today := time.Now().Weekday()
	notToday := (today + 1) % 7

	t.Run("member posting on the check-in day gets 201", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, today)

		cohortRepo.On("FindByID", mock.Anything, "cohort-1").Return(cohort, nil)
		cohortRepo.On("IsMember", mock.Anything, "cohort-1", "user-1").Return(true, nil)
		messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreateMessageParams) bool {
			return p.CohortID == "cohort-1" && p.UserID == "user-1" && p.Content == "hello"
		})).Return(&model.Message{ID: "msg-1", CohortID: "cohort-1", Content: "hello"}, nil)
		notifier.On("NotifyMessage", "cohort-1", mock.Anything).Return()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"hello"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "msg-1")
		notifier.AssertExpectations(t)
	})

	t.Run("non-member is rejected with 403", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, today)

		cohortRepo.On("FindByID", mock.Anything, "cohort-1").Return(cohort, nil)
		cohortRepo.On("IsMember", mock.Anything, "cohort-1", "user-1").Return(false, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"hello"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_A_MEMBER")
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("closed chat off the check-in day is 403", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, notToday)

		cohortRepo.On("FindByID", mock.Anything, "cohort-1").Return(cohort, nil)
		cohortRepo.On("IsMember", mock.Anything, "cohort-1", "user-1").Return(true, nil)
		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"hello"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "CHAT_CLOSED")
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("active session keeps chat open off the check-in day", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, notToday)

		cohortRepo.On("FindByID", mock.Anything, "cohort-1").Return(cohort, nil)
		cohortRepo.On("IsMember", mock.Anything, "cohort-1", "user-1").Return(true, nil)
		sessionRepo.On("FindActiveByCohortID", mock.Anything, "cohort-1").Return(&model.CheckInSession{
			ID: "session-1", CohortID: "cohort-1", Active: true,
		}, nil)
		messageRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Message{ID: "msg-1", CohortID: "cohort-1", Content: "hello"}, nil)
		notifier.On("NotifyMessage", "cohort-1", mock.Anything).Return()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"hello"}`))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unknown cohort is 404", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, today)

		cohortRepo.On("FindByID", mock.Anything, "cohort-1").Return(nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"hello"}`))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("blank content is 400", func(t *testing.T) {
		messageRepo := new(mockMessageRepo)
		cohortRepo := new(mockCohortRepo)
		sessionRepo := new(mockSessionRepo)
		notifier := new(mockNotifier)
		router := newMessageTestRouter(messageRepo, cohortRepo, sessionRepo, notifier, today)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, sendMessageRequest(member, `{"content":"   "}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
