package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	Reference          string               `json:"reference"`
	BranchID           string               `json:"branch_id"`
	ClientID           string               `json:"client_id"`
	ServiceID          string               `json:"service_id"`
	StaffID            *string              `json:"staff_id,omitempty"`
	Date               string               `json:"date"`
	StartTime          string               `json:"start_time"`
	EndTime            string               `json:"end_time"`
	Status             entity.BookingStatus `json:"status"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	PaymentMethod      *string              `json:"payment_method,omitempty"`
	PaymentMessage     string               `json:"payment_message,omitempty"`
	TotalAmount        float64              `json:"total_amount"`
	ConfirmedAt        *time.Time           `json:"confirmed_at,omitempty"`
	ServiceStartedAt   *time.Time           `json:"service_started_at,omitempty"`
	ServiceCompletedAt *time.Time           `json:"service_completed_at,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
	DurationMinutes    *int                 `json:"duration_minutes,omitempty"`
	Payment            *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID             string               `json:"id"`
	BookingID      string               `json:"booking_id"`
	Amount         float64              `json:"amount"`
	Method         string               `json:"method"`
	Status         entity.PaymentStatus `json:"status"`
	TransactionRef *string              `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type BulkOperationResult struct {
	BookingID string `json:"booking_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Helper converters

func BookingToResponse(booking *entity.Booking, payment *entity.Payment) *BookingResponse {
	resp := &BookingResponse{
		ID:                 booking.ID.String(),
		Reference:          booking.Reference,
		BranchID:           booking.BranchID.String(),
		ClientID:           booking.ClientID.String(),
		ServiceID:          booking.ServiceID.String(),
		Date:               booking.AppointmentDate.Format("2006-01-02"),
		StartTime:          booking.StartTime.Format("15:04"),
		EndTime:            booking.EndTime.Format("15:04"),
		Status:             booking.Status,
		PaymentStatus:      booking.PaymentStatus,
		PaymentMethod:      booking.PaymentMethod,
		PaymentMessage:     entity.PaymentStatusMessage(booking, payment),
		TotalAmount:        booking.TotalAmount,
		ConfirmedAt:        booking.ConfirmedAt,
		ServiceStartedAt:   booking.ServiceStartedAt,
		ServiceCompletedAt: booking.ServiceCompletedAt,
		CancelledAt:        booking.CancelledAt,
		CancellationReason: booking.CancellationReason,
		DurationMinutes:    booking.ServiceDurationMinutes(),
		CreatedAt:          booking.CreatedAt,
	}

	if booking.StaffID != nil {
		staffID := booking.StaffID.String()
		resp.StaffID = &staffID
	}

	if payment != nil {
		resp.Payment = &PaymentResponse{
			ID:             payment.ID.String(),
			BookingID:      payment.BookingID.String(),
			Amount:         payment.Amount,
			Method:         payment.Method,
			Status:         payment.Status,
			TransactionRef: payment.TransactionRef,
			CreatedAt:      payment.CreatedAt,
		}
	}

	return resp
}
