package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Intake: create a pending booking
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details with payment state
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// GET /api/bookings/reference/{reference} - Lookup by reference code
		r.Get("/reference/{reference}", bookingHandler.GetBookingByReference)

		// ==================== LIFECYCLE ROUTES ====================
		r.Post("/{id}/confirm", bookingHandler.Confirm)
		r.Post("/{id}/start", bookingHandler.StartService)
		r.Post("/{id}/complete", bookingHandler.CompleteService)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
		r.Post("/{id}/no-show", bookingHandler.MarkNoShow)
		r.Post("/{id}/payment", bookingHandler.RecordPayment)

		// ==================== BULK ROUTES ====================
		r.Post("/bulk/confirm", bookingHandler.BulkConfirm)
		r.Post("/bulk/cancel", bookingHandler.BulkCancel)
	})

	// GET /api/branches/{branchID}/bookings - Day sheet for a branch
	r.Get("/api/branches/{branchID}/bookings", bookingHandler.GetBranchBookings)
}
