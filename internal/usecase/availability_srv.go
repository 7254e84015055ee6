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

// AdmitUncoveredWindows controls what happens when no active capacity rule
// covers a candidate window: true means unrestricted admission. Flip this
// constant to reject bookings outside configured slots instead; the
// conflict detection below is unaffected either way.
const AdmitUncoveredWindows = true

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, branchID, date, start, end string) (*response.AvailabilityResponse, error)

	// Time-slot rule administration
	ListTimeSlots(ctx context.Context, branchID string) ([]response.TimeSlotResponse, error)
	CreateTimeSlot(ctx context.Context, branchID string, req *request.CreateTimeSlotRequest) (*response.TimeSlotResponse, error)
	DeactivateTimeSlot(ctx context.Context, slotID string) error
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// ruleConflict is a capacity rule the candidate window would oversell.
type ruleConflict struct {
	slot         *entity.TimeSlot
	currentCount int
}

type availabilityResult struct {
	allowed   bool
	conflicts []ruleConflict
}

// evaluateAvailability runs the admission check against whatever repository
// set it is given. Booking intake calls it with transaction-bound
// repositories so the count and the subsequent insert cannot race.
func evaluateAvailability(ctx context.Context, r *repository.Repository, branchID uuid.UUID, date time.Time, start, end time.Time) (*availabilityResult, error) {
	slots, err := r.TimeSlot.FindActiveByBranchAndDay(ctx, branchID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("load capacity rules: %w", err)
	}

	result := &availabilityResult{allowed: true}
	covered := false

	for _, slot := range slots {
		if !slot.OverlapsWindow(start, end) {
			continue
		}
		covered = true

		// Count bookings intersecting both the rule window and the
		// candidate window. For intervals, intersecting the overlap of the
		// two is equivalent, so a single range query suffices.
		overlapStart := laterClock(slot.StartTime, start)
		overlapEnd := earlierClock(slot.EndTime, end)

		count, err := r.Booking.CountOverlapping(ctx, branchID, date, overlapStart, overlapEnd)
		if err != nil {
			return nil, fmt.Errorf("count bookings for slot %s: %w", slot.ID.String(), err)
		}

		if count+1 > slot.MaxBookings {
			result.allowed = false
			result.conflicts = append(result.conflicts, ruleConflict{slot: slot, currentCount: count})
		}
	}

	if !covered && !AdmitUncoveredWindows {
		result.allowed = false
	}

	return result, nil
}

func laterClock(a, b time.Time) time.Time {
	if entity.MinuteOfDay(a) > entity.MinuteOfDay(b) {
		return a
	}
	return b
}

func earlierClock(a, b time.Time) time.Time {
	if entity.MinuteOfDay(a) < entity.MinuteOfDay(b) {
		return a
	}
	return b
}

func (r *availabilityResult) toResponse() *response.AvailabilityResponse {
	resp := &response.AvailabilityResponse{Available: r.allowed}
	for _, c := range r.conflicts {
		resp.Conflicts = append(resp.Conflicts, response.RuleConflictResponse{
			TimeSlotID:   c.slot.ID.String(),
			StartTime:    c.slot.StartTime.Format("15:04"),
			EndTime:      c.slot.EndTime.Format("15:04"),
			MaxBookings:  c.slot.MaxBookings,
			CurrentCount: c.currentCount,
		})
	}
	return resp
}

func (s *availabilityService) CheckAvailability(ctx context.Context, branchID, date, start, end string) (*response.AvailabilityResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch ID format %s: %w", branchID, err)
	}

	day, startTime, endTime, err := parseWindow(date, start, end)
	if err != nil {
		return nil, err
	}

	result, err := evaluateAvailability(ctx, s.repo, branchUUID, day, startTime, endTime)
	if err != nil {
		s.log.Error("Failed to evaluate availability",
			zap.Error(err),
			zap.String("branch_id", branchID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("check availability: %w", err)
	}

	s.log.Info("Availability checked",
		zap.String("branch_id", branchID),
		zap.String("date", date),
		zap.String("window", start+"-"+end),
		zap.Bool("available", result.allowed),
		zap.Int("conflicts", len(result.conflicts)),
	)

	return result.toResponse(), nil
}

// parseWindow validates a date plus [start, end) clock window.
func parseWindow(date, start, end string) (time.Time, time.Time, time.Time, error) {
	var zero time.Time

	day, err := utils.ParseDate(date)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: invalid date %s", entity.ErrValidation, date)
	}

	startTime, err := utils.ParseClock(start)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: invalid start time %s", entity.ErrValidation, start)
	}

	endTime, err := utils.ParseClock(end)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: invalid end time %s", entity.ErrValidation, end)
	}

	if entity.MinuteOfDay(endTime) < entity.MinuteOfDay(startTime) {
		return zero, zero, zero, fmt.Errorf("%w: end time %s before start time %s", entity.ErrValidation, end, start)
	}

	return day, startTime, endTime, nil
}

// ==================== ADMIN METHODS ====================

func (s *availabilityService) ListTimeSlots(ctx context.Context, branchID string) ([]response.TimeSlotResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch ID format %s: %w", branchID, err)
	}

	slots, err := s.repo.TimeSlot.FindByBranch(ctx, branchUUID)
	if err != nil {
		s.log.Error("Failed to list time slots", zap.Error(err), zap.String("branch_id", branchID))
		return nil, fmt.Errorf("list time slots: %w", err)
	}

	responses := make([]response.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = response.TimeSlotToResponse(slot)
	}

	return responses, nil
}

func (s *availabilityService) CreateTimeSlot(ctx context.Context, branchID string, req *request.CreateTimeSlotRequest) (*response.TimeSlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create time slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch ID format %s: %w", branchID, err)
	}

	branch, err := s.repo.Branch.FindByID(ctx, branchUUID)
	if err != nil || branch == nil {
		return nil, fmt.Errorf("branch %s: %w", branchID, entity.ErrNotFound)
	}

	startTime, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %s", entity.ErrValidation, req.StartTime)
	}

	endTime, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %s", entity.ErrValidation, req.EndTime)
	}

	if entity.MinuteOfDay(endTime) <= entity.MinuteOfDay(startTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", entity.ErrValidation)
	}

	now := time.Now()
	slot := &entity.TimeSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BranchID:    branchUUID,
		DayOfWeek:   time.Weekday(req.DayOfWeek),
		StartTime:   startTime,
		EndTime:     endTime,
		MaxBookings: req.MaxBookings,
		IsActive:    true,
	}

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create time slot",
			zap.Error(err),
			zap.String("branch_id", branchID),
		)
		return nil, fmt.Errorf("create time slot: %w", err)
	}

	s.log.Info("Time slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("branch_id", branchID),
		zap.Int("day_of_week", req.DayOfWeek),
		zap.String("window", req.StartTime+"-"+req.EndTime),
		zap.Int("max_bookings", req.MaxBookings),
	)

	resp := response.TimeSlotToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) DeactivateTimeSlot(ctx context.Context, slotID string) error {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("invalid time slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.TimeSlot.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate time slot %s: %w", slotID, err)
	}
	if slot == nil {
		return fmt.Errorf("time slot %s: %w", slotID, entity.ErrNotFound)
	}

	if err := s.repo.TimeSlot.Deactivate(ctx, id); err != nil {
		s.log.Error("Failed to deactivate time slot", zap.Error(err), zap.String("slot_id", slotID))
		return fmt.Errorf("deactivate time slot %s: %w", slotID, err)
	}

	s.log.Info("Time slot deactivated", zap.String("slot_id", slotID))
	return nil
}
