package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Branch   BranchRepository
	Client   ClientRepository
	Service  ServiceRepository
	TimeSlot TimeSlotRepository
	Booking  BookingRepository
	Payment  PaymentRepository
}

// NewRepository builds the repository set over a Queryer, which is either
// the shared pool or a transaction (see TxManager).
func NewRepository(db database.Queryer, log *zap.Logger) *Repository {
	return &Repository{
		Branch:   NewBranchRepository(db, log),
		Client:   NewClientRepository(db, log),
		Service:  NewServiceRepository(db, log),
		TimeSlot: NewTimeSlotRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Payment:  NewPaymentRepository(db, log),
	}
}
