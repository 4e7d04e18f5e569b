package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ziptechlabs/cohort-server-go/internal/audit"
	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/middleware"
	"github.com/ziptechlabs/cohort-server-go/internal/model"
	"github.com/ziptechlabs/cohort-server-go/internal/service"
)

type AuthHandler struct {
	authService         *service.AuthService
	verificationService *service.VerificationService
}

func NewAuthHandler(authService *service.AuthService, verificationService *service.VerificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		verificationService: verificationService,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/verify", h.Verify)

	return r
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
		Role     string `json:"role" validate:"omitempty,oneof=founder facilitator"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password, model.UserRole(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventRegister,
		UserID: result.User.ID,
	})

	// Verification email delivery is best effort; the account exists either
	// way and the user can request a resend.
	if _, err := h.verificationService.Send(r.Context(), result.User.ID); err != nil {
		log.Warn().Err(err).Str("userId", result.User.ID).Msg("failed to send verification email")
	}

	writeJSON(w, http.StatusCreated, result)
}

// POST /api/auth/send-verification
func (h *AuthHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	sent, err := h.verificationService.Send(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	if !sent {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Already verified"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent"})
}

// GET /api/auth/verify?token=...
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, apperrors.MissingRequired("token"))
		return
	}

	if err := h.verificationService.Confirm(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		audit.LogFromRequest(r, audit.Event{
			Type: audit.EventLoginFailure,
			Details: map[string]interface{}{
				"email": req.Email,
			},
		})
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventLoginSuccess,
		UserID: result.User.ID,
	})

	writeJSON(w, http.StatusOK, result)
}

// GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// PUT /api/me
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		Name string `json:"name" validate:"required,max=100"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
