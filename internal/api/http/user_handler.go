package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/service"
)

type UserHandler struct {
	userSvc  service.UserService
	noteSvc  service.NotificationService
	validate *validator.Validate
}

func NewUserHandler(userSvc service.UserService, noteSvc service.NotificationService) *UserHandler {
	return &UserHandler{
		userSvc:  userSvc,
		noteSvc:  noteSvc,
		validate: validator.New(),
	}
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type emergencyRequest struct {
	Message   string  `json:"message" validate:"required,max=500"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// GetProfile handles GET /users/{userId}.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.userSvc.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/{userId}.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid profile fields: %v", err))
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), userID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListNotifications handles GET /notifications/{userId}.
func (h *UserHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	notes, err := h.noteSvc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// MarkNotificationRead handles POST /notifications/{userId}/{id}/read.
func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Notification marked as read")
}

// ReportEmergency handles POST /emergency/{userId}.
func (h *UserHandler) ReportEmergency(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req emergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "invalid alert fields: %v", err))
		return
	}

	if err := h.noteSvc.ReportEmergency(r.Context(), userID, req.Message, req.Latitude, req.Longitude); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Emergency alert sent")
}
