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

type BookingHandler struct {
	booking   usecase.BookingService
	lifecycle usecase.LifecycleService
	log       *zap.Logger
}

func NewBookingHandler(booking usecase.BookingService, lifecycle usecase.LifecycleService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		booking:   booking,
		lifecycle: lifecycle,
		log:       log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.booking.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.booking.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingByReference handles GET /api/bookings/reference/{reference}
func (h *BookingHandler) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.booking.GetBookingByReference(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by reference")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBranchBookings handles GET /api/branches/{branchID}/bookings?date=YYYY-MM-DD
func (h *BookingHandler) GetBranchBookings(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.booking.GetBranchBookings(r.Context(), branchID, date, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get branch bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== LIFECYCLE METHODS ====================

// Confirm handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.lifecycle.Confirm(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// StartService handles POST /api/bookings/{id}/start
func (h *BookingHandler) StartService(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.lifecycle.StartService(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "start service")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CompleteService handles POST /api/bookings/{id}/complete
func (h *BookingHandler) CompleteService(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.lifecycle.CompleteService(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "complete service")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Cancel handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.lifecycle.Cancel(r.Context(), bookingID, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// MarkNoShow handles POST /api/bookings/{id}/no-show
func (h *BookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.lifecycle.MarkNoShow(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "mark no-show")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// RecordPayment handles POST /api/bookings/{id}/payment
func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.lifecycle.RecordPayment(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "record payment")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ==================== BULK METHODS ====================

// BulkConfirm handles POST /api/bookings/bulk/confirm
func (h *BookingHandler) BulkConfirm(w http.ResponseWriter, r *http.Request) {
	var req request.BulkConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	results := h.lifecycle.BulkConfirm(r.Context(), req.BookingIDs)
	utils.ResponseSuccess(w, "success", results)
}

// BulkCancel handles POST /api/bookings/bulk/cancel
func (h *BookingHandler) BulkCancel(w http.ResponseWriter, r *http.Request) {
	var req request.BulkCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	results := h.lifecycle.BulkCancel(r.Context(), req.BookingIDs, req.Reason)
	utils.ResponseSuccess(w, "success", results)
}
