package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/service"
)

// AuthHandler serves the local-mode signup/login endpoints and logout.
// In firebase auth mode signup and login happen against Firebase
// Authentication directly and these endpoints are not registered, except
// logout, which drops the reference cache in both modes.
type AuthHandler struct {
	authSvc  service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, validate: validator.New()}
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *domain.UserAccount `json:"user"`
	Token string              `json:"token"`
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid signup fields: %v", err))
		return
	}

	user, token, err := h.authSvc.Signup(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid login fields: %v", err))
		return
	}

	user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Logout handles POST /logout: sign-out is the single trigger that
// invalidates the reference-data cache.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Logged out")
}
