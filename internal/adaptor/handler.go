package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, service.Lifecycle, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
	}
}
