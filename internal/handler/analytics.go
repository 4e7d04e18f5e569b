package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/cohort/{cohortID}", h.Cohort)
	r.Get("/admin", h.Admin)

	return r
}

// GET /api/analytics/cohort/{cohortID}
func (h *AnalyticsHandler) Cohort(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cohortID := chi.URLParam(r, "cohortID")

	analytics, err := h.analyticsService.ForCohort(r.Context(), cohortID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// GET /api/analytics/admin
func (h *AnalyticsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	analytics, err := h.analyticsService.ForAdmin(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}
