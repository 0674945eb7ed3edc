// Package http is the HTTP façade: it translates the legacy
// path-parameter routes of the campus transportation web client into
// service calls and maps service errors to statuses.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campus-transport-backend/internal/security"
	"campus-transport-backend/internal/service"
)

// RouterConfig wires the handlers. LocalAuth registers the signup/login
// endpoints served only in local auth mode.
type RouterConfig struct {
	Rental       service.RentalService
	Users        service.UserService
	Auth         service.AuthService
	Reference    service.ReferenceService
	Notification service.NotificationService
	Verifier     security.Verifier
	LocalAuth    bool
}

func NewRouter(cfg RouterConfig) *mux.Router {
	rentalHandler := NewRentalHandler(cfg.Rental)
	referenceHandler := NewReferenceHandler(cfg.Reference)
	userHandler := NewUserHandler(cfg.Users, cfg.Notification)
	authHandler := NewAuthHandler(cfg.Auth)

	router := mux.NewRouter()
	router.Use(RequestLogger)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, "ok")
	}).Methods(http.MethodGet)

	// Public reads served by the legacy client before login.
	router.HandleFunc("/getSchedule", referenceHandler.GetSchedule).Methods(http.MethodGet)
	router.HandleFunc("/getLocations", referenceHandler.GetLocations).Methods(http.MethodGet)
	router.HandleFunc("/getRent", rentalHandler.GetRent).Methods(http.MethodGet)
	router.HandleFunc("/getEvents", rentalHandler.GetEvents).Methods(http.MethodGet)

	if cfg.LocalAuth {
		router.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
		router.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	}

	// Everything per-user requires a verified token; the path userId is
	// checked against the token subject, never trusted on its own.
	authed := router.NewRoute().Subrouter()
	authed.Use(Authenticate(cfg.Verifier))

	authed.HandleFunc("/rent/{userId}/{item}/{location}", rentalHandler.Rent).Methods(http.MethodPost)
	authed.HandleFunc("/event/{userId}/{item}/{location}", rentalHandler.RentEvent).Methods(http.MethodPost)
	authed.HandleFunc("/complete-rent/{userId}/{item}", rentalHandler.CompleteRent).Methods(http.MethodPost)
	authed.HandleFunc("/complete-rent/{userId}/{item}/geo", rentalHandler.CompleteRentGeofenced).Methods(http.MethodPost)

	authed.HandleFunc("/users/{userId}", userHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/users/{userId}", userHandler.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/notifications/{userId}", userHandler.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{userId}/{id}/read", userHandler.MarkNotificationRead).Methods(http.MethodPost)
	authed.HandleFunc("/emergency/{userId}", userHandler.ReportEmergency).Methods(http.MethodPost)
	authed.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	return router
}
