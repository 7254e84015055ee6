package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/branches/{branchID}/availability - Slot admission check
	// Requires query params: ?date=2024-01-16&start=09:00&end=10:00
	r.Get("/api/branches/{branchID}/availability", availabilityHandler.CheckAvailability)

	// ==================== ADMIN ROUTES ====================
	// Capacity rule configuration (read-only to the lifecycle path)
	r.Get("/api/branches/{branchID}/time-slots", availabilityHandler.ListTimeSlots)
	r.Post("/api/branches/{branchID}/time-slots", availabilityHandler.CreateTimeSlot)
	r.Delete("/api/time-slots/{id}", availabilityHandler.DeactivateTimeSlot)
}
