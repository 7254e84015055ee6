package usecase

import (
	"errors"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking      BookingService
	Lifecycle    LifecycleService
	Availability AvailabilityService
}

func NewService(repo *repository.Repository, tx repository.TxManager, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking:      NewBookingService(repo, tx, config, log),
		Lifecycle:    NewLifecycleService(tx, config, log),
		Availability: NewAvailabilityService(repo, log),
	}
}

// isExpectedFailure distinguishes the recoverable domain outcomes from real
// faults, so the former log as warnings at most.
func isExpectedFailure(err error) bool {
	return errors.Is(err, entity.ErrValidation) ||
		errors.Is(err, entity.ErrInvalidTransition) ||
		errors.Is(err, entity.ErrPaymentRequired) ||
		errors.Is(err, entity.ErrCapacityExceeded) ||
		errors.Is(err, entity.ErrConcurrencyConflict) ||
		errors.Is(err, entity.ErrNotFound)
}
