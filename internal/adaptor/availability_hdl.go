package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/branches/{branchID}/availability
// Requires query params: ?date=2024-01-16&start=09:00&end=10:00
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	query := r.URL.Query()

	date := query.Get("date")
	start := query.Get("start")
	end := query.Get("end")
	if date == "" || start == "" || end == "" {
		utils.ResponseBadRequest(w, "date, start and end query parameters are required", nil)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), branchID, date, start, end)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ==================== ADMIN METHODS ====================

// ListTimeSlots handles GET /api/branches/{branchID}/time-slots
func (h *AvailabilityHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")

	slots, err := h.service.ListTimeSlots(r.Context(), branchID)
	if err != nil {
		handleServiceError(w, h.log, err, "list time slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateTimeSlot handles POST /api/branches/{branchID}/time-slots
func (h *AvailabilityHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")

	var req request.CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateTimeSlot(r.Context(), branchID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create time slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// DeactivateTimeSlot handles DELETE /api/time-slots/{id}
func (h *AvailabilityHandler) DeactivateTimeSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Time slot ID is required", nil)
		return
	}

	if err := h.service.DeactivateTimeSlot(r.Context(), slotID); err != nil {
		handleServiceError(w, h.log, err, "deactivate time slot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
