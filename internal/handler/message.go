package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziptechlabs/cohort-server-go/internal/audit"
	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

// MessageHandler carries the moderation endpoints addressed by message id.
// Reading and sending live under the cohort routes.
type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{messageID}/pin", h.TogglePin)
	r.Post("/{messageID}/mute", h.ToggleMute)

	return r
}

// POST /api/messages/{messageID}/pin
func (h *MessageHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	messageID := chi.URLParam(r, "messageID")

	msg, err := h.messageService.TogglePin(r.Context(), messageID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventMessagePinned,
		UserID:   user.ID,
		CohortID: msg.CohortID,
		Details:  map[string]interface{}{"messageId": msg.ID, "pinned": msg.IsPinned},
	})

	writeJSON(w, http.StatusOK, msg)
}

// POST /api/messages/{messageID}/mute
func (h *MessageHandler) ToggleMute(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	messageID := chi.URLParam(r, "messageID")

	msg, err := h.messageService.ToggleMute(r.Context(), messageID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventMessageMuted,
		UserID:   user.ID,
		CohortID: msg.CohortID,
		Details:  map[string]interface{}{"messageId": msg.ID, "muted": msg.IsMuted},
	})

	writeJSON(w, http.StatusOK, msg)
}
