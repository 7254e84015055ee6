package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService owns every booking status mutation after intake. Each
// operation runs in one transaction with the booking row locked, so a
// failed guard never leaves a partial update behind and concurrent calls
// against the same booking serialize.
type LifecycleService interface {
	Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	StartService(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CompleteService(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, reason string) (*response.BookingResponse, error)
	MarkNoShow(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	RecordPayment(ctx context.Context, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error)

	// Bulk variants are best-effort: members fail independently.
	BulkConfirm(ctx context.Context, bookingIDs []string) []response.BulkOperationResult
	BulkCancel(ctx context.Context, bookingIDs []string, reason string) []response.BulkOperationResult
}

type lifecycleService struct {
	tx     repository.TxManager
	config *utils.Config
	log    *zap.Logger
}

func NewLifecycleService(tx repository.TxManager, config *utils.Config, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		tx:     tx,
		config: config,
		log:    log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var result *response.BookingResponse
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		if !booking.CanConfirm() {
			return fmt.Errorf("%w: cannot confirm booking in status %s", entity.ErrInvalidTransition, booking.Status)
		}

		// Payment state is re-read inside the transaction; never trust a
		// snapshot taken before the row lock.
		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}
		if !entity.HasValidPayment(booking, payment) {
			return fmt.Errorf("%w: %s", entity.ErrPaymentRequired, entity.PaymentStatusMessage(booking, payment))
		}

		now := time.Now()
		booking.Status = entity.BookingStatusConfirmed
		booking.ConfirmedAt = &now
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
	)

	return result, nil
}

func (s *lifecycleService) StartService(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var result *response.BookingResponse
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		// No payment guard here: a service may begin before payment
		// finalizes. Completion is where payment is enforced.
		if !booking.CanStartService() || booking.ServiceStartedAt != nil {
			return fmt.Errorf("%w: cannot start booking in status %s", entity.ErrInvalidTransition, booking.Status)
		}

		now := time.Now()
		booking.Status = entity.BookingStatusInProgress
		booking.ServiceStartedAt = &now
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Service started",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
	)

	return result, nil
}

func (s *lifecycleService) CompleteService(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var result *response.BookingResponse
	var directCompletion bool

	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		if !booking.CanCompleteService() {
			return fmt.Errorf("%w: cannot complete booking in status %s", entity.ErrInvalidTransition, booking.Status)
		}

		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}
		if !entity.HasValidPayment(booking, payment) {
			return fmt.Errorf("%w: %s", entity.ErrPaymentRequired, entity.PaymentStatusMessage(booking, payment))
		}

		now := time.Now()

		if booking.Status == entity.BookingStatusConfirmed {
			// Direct completion skips in_progress: synthesize the start
			// timestamp by back-dating the service's standard duration so
			// duration reporting stays consistent. Deliberate shortcut for
			// already-confirmed same-day bookings; keep it.
			directCompletion = true
			started := now.Add(-s.assumedDuration(ctx, r, booking))
			booking.ServiceStartedAt = &started
		}

		booking.Status = entity.BookingStatusCompleted
		booking.ServiceCompletedAt = &now
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Service completed",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
		zap.Bool("direct_completion", directCompletion),
	)

	return result, nil
}

// assumedDuration resolves the service's standard duration for back-dating,
// falling back to the configured default when the offering is missing.
func (s *lifecycleService) assumedDuration(ctx context.Context, r *repository.Repository, booking *entity.Booking) time.Duration {
	service, err := r.Service.FindByID(ctx, booking.ServiceID)
	if err != nil || service == nil || service.DurationMinutes <= 0 {
		return time.Duration(s.config.Booking.DefaultDurationMinutes) * time.Minute
	}
	return service.Duration()
}

func (s *lifecycleService) Cancel(ctx context.Context, bookingID, reason string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", entity.ErrValidation)
	}

	var result *response.BookingResponse
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		if !booking.CanCancel() {
			return fmt.Errorf("%w: cannot cancel booking in status %s", entity.ErrInvalidTransition, booking.Status)
		}

		now := time.Now()
		booking.Status = entity.BookingStatusCancelled
		booking.CancelledAt = &now
		booking.CancellationReason = &reason
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
		zap.String("reason", reason),
	)

	return result, nil
}

func (s *lifecycleService) MarkNoShow(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var result *response.BookingResponse
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		// Admin-triggered, no payment guard.
		if !booking.CanMarkNoShow() {
			return fmt.Errorf("%w: cannot mark booking in status %s as no-show", entity.ErrInvalidTransition, booking.Status)
		}

		now := time.Now()
		booking.Status = entity.BookingStatusNoShow
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Booking marked as no-show",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
	)

	return result, nil
}

func (s *lifecycleService) RecordPayment(ctx context.Context, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Record payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	status := entity.PaymentStatus(req.Status)
	if !entity.IsValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: invalid payment status %s", entity.ErrValidation, req.Status)
	}

	var result *response.BookingResponse
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		booking, err := lockBooking(ctx, r, id)
		if err != nil {
			return err
		}

		now := time.Now()

		payment, err := r.Payment.FindByBookingID(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			payment = &entity.Payment{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				BookingID: id,
			}
		}

		payment.Amount = req.Amount
		payment.Method = req.Method
		payment.Status = status
		payment.TransactionRef = req.TransactionRef
		payment.UpdatedAt = now

		if err := r.Payment.Upsert(ctx, payment); err != nil {
			return err
		}

		// Mirror payment fields onto the booking. Status itself is never
		// touched here; confirming stays an explicit separate step.
		booking.PaymentStatus = status
		booking.PaymentMethod = &payment.Method
		booking.TotalAmount = req.Amount
		booking.UpdatedAt = now

		if err := r.Booking.Update(ctx, booking); err != nil {
			return err
		}

		result = response.BookingToResponse(booking, payment)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("Payment recorded",
		zap.String("booking_id", bookingID),
		zap.String("reference", result.Reference),
		zap.Float64("amount", req.Amount),
		zap.String("method", req.Method),
		zap.String("status", req.Status),
	)

	return result, nil
}

// ==================== BULK OPERATIONS ====================

func (s *lifecycleService) BulkConfirm(ctx context.Context, bookingIDs []string) []response.BulkOperationResult {
	results := make([]response.BulkOperationResult, len(bookingIDs))
	succeeded := 0

	for i, bookingID := range bookingIDs {
		results[i] = response.BulkOperationResult{BookingID: bookingID}
		if _, err := s.Confirm(ctx, bookingID); err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Success = true
		succeeded++
	}

	s.log.Info("Bulk confirm finished",
		zap.Int("total", len(bookingIDs)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(bookingIDs)-succeeded),
	)

	return results
}

func (s *lifecycleService) BulkCancel(ctx context.Context, bookingIDs []string, reason string) []response.BulkOperationResult {
	results := make([]response.BulkOperationResult, len(bookingIDs))
	succeeded := 0

	for i, bookingID := range bookingIDs {
		results[i] = response.BulkOperationResult{BookingID: bookingID}
		if _, err := s.Cancel(ctx, bookingID, reason); err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Success = true
		succeeded++
	}

	s.log.Info("Bulk cancel finished",
		zap.Int("total", len(bookingIDs)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(bookingIDs)-succeeded),
	)

	return results
}

// lockBooking loads the booking under FOR UPDATE, translating a missing row
// into the domain's not-found error.
func lockBooking(ctx context.Context, r *repository.Repository, id uuid.UUID) (*entity.Booking, error) {
	booking, err := r.Booking.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id.String(), entity.ErrNotFound)
	}
	return booking, nil
}
