package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

type Booking struct {
	Base
	Reference          string        `db:"reference"`
	BranchID           uuid.UUID     `db:"branch_id"`
	ClientID           uuid.UUID     `db:"client_id"`
	ServiceID          uuid.UUID     `db:"service_id"`
	StaffID            *uuid.UUID    `db:"staff_id"`
	AppointmentDate    time.Time     `db:"appointment_date"`
	StartTime          time.Time     `db:"start_time"`
	EndTime            time.Time     `db:"end_time"`
	Status             BookingStatus `db:"status"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	PaymentMethod      *string       `db:"payment_method"`
	TotalAmount        float64       `db:"total_amount"`
	ConfirmedAt        *time.Time    `db:"confirmed_at"`
	ServiceStartedAt   *time.Time    `db:"service_started_at"`
	ServiceCompletedAt *time.Time    `db:"service_completed_at"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
	CancellationReason *string       `db:"cancellation_reason"`
}

func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further forward transition exists.
// Terminal states are never re-entered; a second attempt is an
// ErrInvalidTransition, not a silent no-op.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// CanConfirm: only a pending booking can be confirmed. The payment gate is
// checked separately so callers can tell the two failures apart.
func (b *Booking) CanConfirm() bool {
	return b.Status == BookingStatusPending
}

// CanStartService: a service may begin before payment finalizes.
func (b *Booking) CanStartService() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanCompleteService covers both paths: in_progress → completed and the
// direct confirmed → completed shortcut.
func (b *Booking) CanCompleteService() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusInProgress
}

func (b *Booking) CanCancel() bool {
	return b.Status != BookingStatusCompleted && b.Status != BookingStatusCancelled
}

func (b *Booking) CanMarkNoShow() bool {
	return !b.IsTerminal() && b.Status != BookingStatusNoShow
}

// ServiceDurationMinutes returns the recorded service duration in whole
// minutes, or nil while the service has not finished.
func (b *Booking) ServiceDurationMinutes() *int {
	if b.ServiceStartedAt == nil || b.ServiceCompletedAt == nil {
		return nil
	}
	minutes := int(b.ServiceCompletedAt.Sub(*b.ServiceStartedAt).Minutes())
	return &minutes
}
