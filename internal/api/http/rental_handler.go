package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/service"
)

// RentalHandler exposes the rental ledger over the legacy path-parameter
// routes the web client calls.
type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

// Rent handles POST /rent/{userId}/{item}/{location}.
func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)

	if err := h.rentalSvc.Reserve(r.Context(), userID, vars["item"], vars["location"]); err != nil {
		writeError(w, err)
		return
	}
	// Legacy success message, kept for the existing client.
	writeMessage(w, "Location added successfully")
}

// RentEvent handles POST /event/{userId}/{item}/{location}.
func (h *RentalHandler) RentEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)

	if err := h.rentalSvc.EventReserve(r.Context(), userID, vars["item"], vars["location"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Location added successfully")
}

// CompleteRent handles POST /complete-rent/{userId}/{item}.
func (h *RentalHandler) CompleteRent(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)

	if err := h.rentalSvc.Release(r.Context(), userID, vars["item"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Rental completed successfully")
}

// CompleteRentGeofenced handles POST /complete-rent/{userId}/{item}/geo
// with lat/lon query parameters reported by the device.
func (h *RentalHandler) CompleteRentGeofenced(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, domain.Errorf(domain.CodeInvalidArgument, "lat and lon query parameters are required"))
		return
	}

	if err := h.rentalSvc.GeofencedRelease(r.Context(), userID, vars["item"], lat, lon); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Rental completed successfully")
}

// GetRent handles GET /getRent: the station inventory list.
func (h *RentalHandler) GetRent(w http.ResponseWriter, r *http.Request) {
	items, err := h.rentalSvc.ListInventory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetEvents handles GET /getEvents: the event rental list.
func (h *RentalHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.rentalSvc.ListEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
