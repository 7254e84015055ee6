package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService covers intake and the read side. All status mutations
// after creation belong to LifecycleService.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	GetBranchBookings(ctx context.Context, branchID, date string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	tx     repository.TxManager
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, tx repository.TxManager, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		tx:     tx,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch ID format %s: %w", req.BranchID, err)
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID format %s: %w", req.ClientID, err)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	var staffID *uuid.UUID
	if req.StaffID != nil {
		parsed, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, fmt.Errorf("invalid staff ID format %s: %w", *req.StaffID, err)
		}
		staffID = &parsed
	}

	// Validate referenced records
	branch, err := s.repo.Branch.FindByID(ctx, branchID)
	if err != nil || branch == nil {
		return nil, fmt.Errorf("branch %s: %w", req.BranchID, entity.ErrNotFound)
	}

	client, err := s.repo.Client.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, entity.ErrNotFound)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil || service == nil {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, entity.ErrNotFound)
	}
	if !service.IsActive {
		return nil, fmt.Errorf("%w: service %s is not active", entity.ErrValidation, service.Name)
	}

	// Parse the appointment window
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", entity.ErrValidation, req.Date)
	}

	startTime, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %s", entity.ErrValidation, req.StartTime)
	}

	// End defaults to start plus the service's standard duration
	endTime := startTime.Add(service.Duration())
	if req.EndTime != nil {
		endTime, err = utils.ParseClock(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end time %s", entity.ErrValidation, *req.EndTime)
		}
	}

	if entity.MinuteOfDay(endTime) < entity.MinuteOfDay(startTime) {
		return nil, fmt.Errorf("%w: end time %s before start time %s", entity.ErrValidation, endTime.Format("15:04"), req.StartTime)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:       utils.GenerateBookingReference(),
		BranchID:        branchID,
		ClientID:        clientID,
		ServiceID:       serviceID,
		StaffID:         staffID,
		AppointmentDate: date,
		StartTime:       startTime,
		EndTime:         endTime,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		TotalAmount:     service.Price,
	}

	// Capacity check and insert share one transaction, so two concurrent
	// intakes cannot both pass the count and oversell a slot.
	err = s.tx.RunInTx(ctx, func(r *repository.Repository) error {
		availability, err := evaluateAvailability(ctx, r, branchID, date, startTime, endTime)
		if err != nil {
			return err
		}
		if !availability.allowed {
			return fmt.Errorf("%w: %d rule(s) violated for %s %s-%s",
				entity.ErrCapacityExceeded,
				len(availability.conflicts),
				req.Date, req.StartTime, endTime.Format("15:04"),
			)
		}

		return r.Booking.Create(ctx, booking)
	})

	if err != nil {
		if !isExpectedFailure(err) {
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("branch_id", req.BranchID),
				zap.String("client_id", req.ClientID),
			)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("branch_id", req.BranchID),
		zap.String("date", req.Date),
		zap.String("window", req.StartTime+"-"+endTime.Format("15:04")),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	return response.BookingToResponse(booking, nil), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, entity.ErrNotFound)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment for booking %s: %w", bookingID, err)
	}

	return response.BookingToResponse(booking, payment), nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get booking by reference %s: %w", reference, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", reference, entity.ErrNotFound)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get payment for booking %s: %w", reference, err)
	}

	return response.BookingToResponse(booking, payment), nil
}

func (s *bookingService) GetBranchBookings(ctx context.Context, branchID, date string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch ID format %s: %w", branchID, err)
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", entity.ErrValidation, date)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByBranchAndDate(ctx, branchUUID, day, limit, offset)
	if err != nil {
		s.log.Error("Failed to get branch bookings",
			zap.Error(err),
			zap.String("branch_id", branchID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("get branch bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByBranchAndDate(ctx, branchUUID, day)
	if err != nil {
		s.log.Error("Failed to count branch bookings", zap.Error(err))
		return nil, fmt.Errorf("count branch bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("get payment for booking %s: %w", booking.ID.String(), err)
		}
		bookingResponses[i] = *response.BookingToResponse(booking, payment)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}
