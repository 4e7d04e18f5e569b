package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type CheckInHandler struct {
	checkInService *service.CheckInService
}

func NewCheckInHandler(checkInService *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

func (h *CheckInHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// GET /api/checkins
func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	checkIns, err := h.checkInService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"checkIns": checkIns})
}
