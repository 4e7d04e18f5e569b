package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/audit"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type CohortHandler struct {
	cohortService  *service.CohortService
	messageService *service.MessageService
	sessionService *service.CheckInSessionService
	meetingService *service.MeetingService
}

func NewCohortHandler(
	cohortService *service.CohortService,
	messageService *service.MessageService,
	sessionService *service.CheckInSessionService,
	meetingService *service.MeetingService,
) *CohortHandler {
	return &CohortHandler{
		cohortService:  cohortService,
		messageService: messageService,
		sessionService: sessionService,
		meetingService: meetingService,
	}
}

func (h *CohortHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/join", h.Join)

	r.Route("/{cohortID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/members", h.Members)

		r.Get("/messages", h.ListMessages)
		r.Post("/messages", h.SendMessage)

		r.Get("/session", h.SessionStatus)
		r.Post("/session/start", h.StartSession)
		r.Post("/session/stop", h.StopSession)

		r.Get("/meetings", h.ListMeetings)
		r.Post("/meetings", h.CreateMeeting)
	})

	return r
}

// POST /api/cohorts
func (h *CohortHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		Name      string     `json:"name" validate:"required"`
		StartDate time.Time  `json:"startDate" validate:"required"`
		EndDate   *time.Time `json:"endDate"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	cohort, err := h.cohortService.Create(r.Context(), user, service.CreateCohortParams{
		Name:          req.Name,
		FacilitatorID: user.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cohort)
}

// GET /api/cohorts
func (h *CohortHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	cohorts, err := h.cohortService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cohorts": cohorts})
}

// POST /api/cohorts/join
func (h *CohortHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		InviteCode string `json:"inviteCode" validate:"required"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	cohort, err := h.cohortService.Join(r.Context(), user.ID, req.InviteCode)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventCohortJoin,
		UserID:   user.ID,
		CohortID: cohort.ID,
	})

	writeJSON(w, http.StatusOK, cohort)
}

// GET /api/cohorts/{cohortID}
func (h *CohortHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	detail, err := h.cohortService.Get(r.Context(), cohortID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// GET /api/cohorts/{cohortID}/members
func (h *CohortHandler) Members(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	members, err := h.cohortService.Members(r.Context(), cohortID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

// GET /api/cohorts/{cohortID}/messages
func (h *CohortHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	result, err := h.messageService.List(r.Context(), cohortID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /api/cohorts/{cohortID}/messages
func (h *CohortHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.messageService.Send(r.Context(), cohortID, user.ID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// GET /api/cohorts/{cohortID}/session
func (h *CohortHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	cohortID := chi.URLParam(r, "cohortID")

	session, err := h.sessionService.ActiveSession(r.Context(), cohortID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active":  session != nil,
		"session": session,
	})
}

// POST /api/cohorts/{cohortID}/session/start
func (h *CohortHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	if !user.Role.IsModerator() {
		writeError(w, apperrors.Forbidden("Only facilitators can start sessions"))
		return
	}

	session, created, err := h.sessionService.Start(r.Context(), cohortID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	if created {
		audit.LogFromRequest(r, audit.Event{
			Type:     audit.EventSessionStart,
			UserID:   user.ID,
			CohortID: cohortID,
		})
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, session)
}

// POST /api/cohorts/{cohortID}/session/stop
func (h *CohortHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	if !user.Role.IsModerator() {
		writeError(w, apperrors.Forbidden("Only facilitators can stop sessions"))
		return
	}

	session, err := h.sessionService.Stop(r.Context(), cohortID)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventSessionStop,
		UserID:   user.ID,
		CohortID: cohortID,
	})

	writeJSON(w, http.StatusOK, session)
}

// GET /api/cohorts/{cohortID}/meetings
func (h *CohortHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	meetings, err := h.meetingService.ListForCohort(r.Context(), cohortID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meetings": meetings})
}

// POST /api/cohorts/{cohortID}/meetings
func (h *CohortHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	var req struct {
		Title           string    `json:"title" validate:"required"`
		Agenda          *string   `json:"agenda"`
		ScheduledAt     time.Time `json:"scheduledAt" validate:"required"`
		DurationMinutes int       `json:"durationMinutes"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	meeting, err := h.meetingService.Create(r.Context(), user, service.CreateMeetingParams{
		CohortID:        cohortID,
		Title:           req.Title,
		Agenda:          req.Agenda,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       user.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, meeting)
}
