package request

type CreateBookingRequest struct {
	BranchID  string  `json:"branch_id" validate:"required,uuid4"`
	ClientID  string  `json:"client_id" validate:"required,uuid4"`
	ServiceID string  `json:"service_id" validate:"required,uuid4"`
	StaffID   *string `json:"staff_id,omitempty" validate:"omitempty,uuid4"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"start_time" validate:"required,datetime=15:04"`
	// Optional; defaults to start + service duration.
	EndTime *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
}

type RecordPaymentRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Method         string  `json:"method" validate:"required"`
	Status         string  `json:"status" validate:"required,oneof=pending completed failed refunded"`
	TransactionRef *string `json:"transaction_ref,omitempty"`
}

// Reason is validated in the usecase so an empty value surfaces as the
// domain's validation failure, not as a decode error.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type BulkConfirmRequest struct {
	BookingIDs []string `json:"booking_ids" validate:"required,min=1,dive,uuid4"`
}

type BulkCancelRequest struct {
	BookingIDs []string `json:"booking_ids" validate:"required,min=1,dive,uuid4"`
	Reason     string   `json:"reason"`
}
