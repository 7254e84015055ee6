package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	Base
	BookingID      uuid.UUID     `db:"booking_id"`
	Amount         float64       `db:"amount"`
	Method         string        `db:"method"`
	Status         PaymentStatus `db:"status"`
	TransactionRef *string       `db:"transaction_ref"`
}

func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// HasValidPayment is the payment gate: true iff the booking has a payment
// record whose status is completed and whose amount covers the booking
// total. Partial payments do not validate. Pure predicate, no side effects.
func HasValidPayment(booking *Booking, payment *Payment) bool {
	if booking == nil || payment == nil {
		return false
	}
	return payment.Status == PaymentStatusCompleted && payment.Amount >= booking.TotalAmount
}

// PaymentStatusMessage describes the payment state for display. Not
// state-bearing; callers must use HasValidPayment for decisions.
func PaymentStatusMessage(booking *Booking, payment *Payment) string {
	if payment == nil {
		return "No payment recorded"
	}

	switch payment.Status {
	case PaymentStatusCompleted:
		if payment.Amount < booking.TotalAmount {
			return fmt.Sprintf("Partial payment of %.2f against total %.2f", payment.Amount, booking.TotalAmount)
		}
		return fmt.Sprintf("Paid %.2f via %s", payment.Amount, payment.Method)
	case PaymentStatusPending:
		return "Payment pending"
	case PaymentStatusFailed:
		return "Payment failed"
	case PaymentStatusRefunded:
		return fmt.Sprintf("Refunded %.2f", payment.Amount)
	default:
		return fmt.Sprintf("Unknown payment status %s", payment.Status)
	}
}
