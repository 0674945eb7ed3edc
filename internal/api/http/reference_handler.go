package http

import (
	"net/http"

	"campus-transport-backend/internal/service"
)

// ReferenceHandler serves the read-only reference collections through
// the read-through cache.
type ReferenceHandler struct {
	refSvc service.ReferenceService
}

func NewReferenceHandler(refSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refSvc: refSvc}
}

// GetSchedule handles GET /getSchedule.
func (h *ReferenceHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	payload, err := h.refSvc.ListSchedules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

// GetLocations handles GET /getLocations: the campus buildings list.
func (h *ReferenceHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	payload, err := h.refSvc.ListBuildings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}
