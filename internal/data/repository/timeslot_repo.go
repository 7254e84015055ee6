package repository

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.TimeSlot, error)
	// FindActiveByBranchAndDay returns the active capacity rules a
	// candidate window on that weekday must be checked against.
	FindActiveByBranchAndDay(ctx context.Context, branchID uuid.UUID, day time.Weekday) ([]*entity.TimeSlot, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type timeSlotRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewTimeSlotRepository(db database.Queryer, log *zap.Logger) TimeSlotRepository {
	return &timeSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "timeslot")),
	}
}

func (r *timeSlotRepository) Create(ctx context.Context, slot *entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, branch_id, day_of_week, start_time, end_time, max_bookings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.BranchID,
		int(slot.DayOfWeek),
		slot.StartTime,
		slot.EndTime,
		slot.MaxBookings,
		slot.IsActive,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create time slot",
			zap.Error(err),
			zap.String("branch_id", slot.BranchID.String()),
		)
		return fmt.Errorf("create time slot for branch %s: %w", slot.BranchID.String(), err)
	}

	return nil
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	query := `
		SELECT id, branch_id, day_of_week, start_time, end_time, max_bookings, is_active, created_at, updated_at
		FROM time_slots
		WHERE id = $1
	`

	var slot entity.TimeSlot
	var day int
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.BranchID,
		&day,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxBookings,
		&slot.IsActive,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find time slot by ID %s: %w", id.String(), err)
	}

	slot.DayOfWeek = time.Weekday(day)
	return &slot, nil
}

func (r *timeSlotRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, branch_id, day_of_week, start_time, end_time, max_bookings, is_active, created_at, updated_at
		FROM time_slots
		WHERE branch_id = $1
		ORDER BY day_of_week, start_time
	`

	return r.querySlots(ctx, query, branchID)
}

func (r *timeSlotRepository) FindActiveByBranchAndDay(ctx context.Context, branchID uuid.UUID, day time.Weekday) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, branch_id, day_of_week, start_time, end_time, max_bookings, is_active, created_at, updated_at
		FROM time_slots
		WHERE branch_id = $1 AND day_of_week = $2 AND is_active = true
		ORDER BY start_time
	`

	return r.querySlots(ctx, query, branchID, int(day))
}

func (r *timeSlotRepository) querySlots(ctx context.Context, query string, args ...any) ([]*entity.TimeSlot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query time slots", zap.Error(err))
		return nil, fmt.Errorf("query time slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		var slot entity.TimeSlot
		var day int
		err := rows.Scan(
			&slot.ID,
			&slot.BranchID,
			&day,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MaxBookings,
			&slot.IsActive,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slot.DayOfWeek = time.Weekday(day)
		slots = append(slots, &slot)
	}

	return slots, nil
}

func (r *timeSlotRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE time_slots SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate time slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("deactivate time slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}
