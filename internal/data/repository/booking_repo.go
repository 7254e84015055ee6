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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate locks the booking row for the rest of the
	// transaction so concurrent transitions serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error)
	CountByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	CountOverlapping(ctx context.Context, branchID uuid.UUID, date time.Time, start, end time.Time) (int, error)
}

type bookingRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewBookingRepository(db database.Queryer, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, branch_id, client_id, service_id, staff_id,
	appointment_date, start_time, end_time, status, payment_status, payment_method,
	total_amount, confirmed_at, service_started_at, service_completed_at,
	cancelled_at, cancellation_reason, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.BranchID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.StaffID,
		&booking.AppointmentDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.TotalAmount,
		&booking.ConfirmedAt,
		&booking.ServiceStartedAt,
		&booking.ServiceCompletedAt,
		&booking.CancelledAt,
		&booking.CancellationReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, branch_id, client_id, service_id, staff_id,
			appointment_date, start_time, end_time, status, payment_status, payment_method,
			total_amount, confirmed_at, service_started_at, service_completed_at,
			cancelled_at, cancellation_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.BranchID,
		booking.ClientID,
		booking.ServiceID,
		booking.StaffID,
		booking.AppointmentDate,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.TotalAmount,
		booking.ConfirmedAt,
		booking.ServiceStartedAt,
		booking.ServiceCompletedAt,
		booking.CancelledAt,
		booking.CancellationReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("branch_id", booking.BranchID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking row",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE reference = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE branch_id = $1 AND appointment_date = $2
		ORDER BY start_time
		LIMIT $3 OFFSET $4
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, branchID, date, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by branch and date",
			zap.Error(err),
			zap.String("branch_id", branchID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find bookings for branch %s: %w", branchID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE branch_id = $1 AND appointment_date = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, branchID, date).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by branch and date",
			zap.Error(err),
			zap.String("branch_id", branchID.String()),
		)
		return 0, fmt.Errorf("count bookings for branch %s: %w", branchID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, payment_method = $4, total_amount = $5,
		    confirmed_at = $6, service_started_at = $7, service_completed_at = $8,
		    cancelled_at = $9, cancellation_reason = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.TotalAmount,
		booking.ConfirmedAt,
		booking.ServiceStartedAt,
		booking.ServiceCompletedAt,
		booking.CancelledAt,
		booking.CancellationReason,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, branchID uuid.UUID, date time.Time, start, end time.Time) (int, error) {
	// Half-open interval overlap; cancelled bookings release capacity.
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE branch_id = $1
		  AND appointment_date = $2
		  AND status <> 'cancelled'
		  AND start_time < $4
		  AND end_time > $3
	`

	var count int
	err := r.db.QueryRow(ctx, query, branchID, date, start, end).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("branch_id", branchID.String()),
			zap.Time("date", date),
		)
		return 0, fmt.Errorf("count overlapping bookings for branch %s: %w", branchID.String(), err)
	}

	return count, nil
}
