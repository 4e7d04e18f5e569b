package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

// MeetingHandler carries the endpoints addressed by meeting id. Listing and
// scheduling live under the cohort routes.
type MeetingHandler struct {
	meetingService *service.MeetingService
}

func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

func (h *MeetingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{meetingID}/rsvp", h.RSVP)
	r.Get("/{meetingID}/rsvps", h.ListRSVPs)

	return r
}

// POST /api/meetings/{meetingID}/rsvp
func (h *MeetingHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	meetingID := chi.URLParam(r, "meetingID")

	var req struct {
		Status string `json:"status" validate:"required,oneof=yes maybe no"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.meetingService.RSVP(r.Context(), meetingID, user.ID, model.RSVPStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": req.Status})
}

// GET /api/meetings/{meetingID}/rsvps
func (h *MeetingHandler) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	meetingID := chi.URLParam(r, "meetingID")

	rsvps, err := h.meetingService.RSVPs(r.Context(), meetingID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rsvps": rsvps})
}
