package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type SupportHandler struct {
	supportService *service.SupportService
}

func NewSupportHandler(supportService *service.SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

func (h *SupportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{goalID}", h.Add)
	r.Get("/{goalID}", h.List)

	return r
}

// POST /api/support/{goalID}
func (h *SupportHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var req struct {
		Type    string  `json:"type" validate:"required,oneof=support help endorse"`
		Message *string `json:"message"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	support, err := h.supportService.Add(r.Context(), goalID, user.ID, model.SupportType(req.Type), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, support)
}

// GET /api/support/{goalID}
func (h *SupportHandler) List(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalID")

	supports, err := h.supportService.ListForGoal(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"support": supports})
}
