package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type GoalHandler struct {
	goalService    *service.GoalService
	checkInService *service.CheckInService
}

func NewGoalHandler(goalService *service.GoalService, checkInService *service.CheckInService) *GoalHandler {
	return &GoalHandler{goalService: goalService, checkInService: checkInService}
}

func (h *GoalHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{goalID}", h.Get)
	r.Patch("/{goalID}/status", h.UpdateStatus)
	r.Post("/{goalID}/checkin", h.CheckIn)

	return r
}

// POST /api/goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		CohortID    string `json:"cohortId" validate:"required"`
		Type        string `json:"type" validate:"required,oneof=public private"`
		Description string `json:"description" validate:"required"`
		WeekNumber  int    `json:"weekNumber" validate:"required,min=1"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), service.CreateGoalParams{
		UserID:      user.ID,
		CohortID:    req.CohortID,
		Type:        model.GoalType(req.Type),
		Description: req.Description,
		WeekNumber:  req.WeekNumber,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// GET /api/goals?week=N
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var week *int
	if raw := r.URL.Query().Get("week"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, apperrors.InvalidInput("week", "must be a positive integer"))
			return
		}
		week = &n
	}

	goals, err := h.goalService.ListForUser(r.Context(), user.ID, week)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// PATCH /api/goals/{goalID}/status
func (h *GoalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending done partial not_done"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := h.goalService.UpdateStatus(r.Context(), goalID, user.ID, model.GoalStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// GET /api/goals/{goalID}
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	goal, err := h.goalService.Get(r.Context(), goalID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// POST /api/goals/{goalID}/checkin
func (h *GoalHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var req struct {
		Status      string  `json:"status" validate:"required,oneof=done partial not_done"`
		BlockerNote *string `json:"blockerNote"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	checkIn, err := h.checkInService.Create(r.Context(), service.CreateCheckInParams{
		UserID:      user.ID,
		GoalID:      goalID,
		Status:      model.CheckInStatus(req.Status),
		BlockerNote: req.BlockerNote,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkIn)
}
