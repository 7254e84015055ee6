package usecase

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(branchID, clientID, serviceID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		BranchID:  branchID.String(),
		ClientID:  clientID.String(),
		ServiceID: serviceID.String(),
		Date:      mondayStr,
		StartTime: "10:00",
	}
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 90, 750)

	resp, err := srv.CreateBooking(ctx, createRequest(branchID, clientID, serviceID))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, float64(750), resp.TotalAmount)
	assert.Regexp(t, `^APT-\d{8}-\d{6}-\d{4}$`, resp.Reference)
	assert.Equal(t, "10:00", resp.StartTime)
	// End time defaults to start plus the service's standard duration.
	assert.Equal(t, "11:30", resp.EndTime)

	stored, err := env.bookings.FindByReference(ctx, resp.Reference)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, clientID, stored.ClientID)
}

func TestCreateBookingExplicitEndTime(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 90, 750)

	req := createRequest(branchID, clientID, serviceID)
	end := "12:00"
	req.EndTime = &end

	resp, err := srv.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "12:00", resp.EndTime)
}

func TestCreateBookingEndBeforeStart(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 90, 750)

	req := createRequest(branchID, clientID, serviceID)
	end := "09:00"
	req.EndTime = &end

	_, err := srv.CreateBooking(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateBookingUnknownReferences(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 90, 750)

	t.Run("unknown branch", func(t *testing.T) {
		req := createRequest(uuid.New(), clientID, serviceID)
		_, err := srv.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("unknown client", func(t *testing.T) {
		req := createRequest(branchID, uuid.New(), serviceID)
		_, err := srv.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := createRequest(branchID, clientID, uuid.New())
		_, err := srv.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestCreateBookingInactiveService(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 90, 750)
	env.services.services[serviceID].IsActive = false

	_, err := srv.CreateBooking(ctx, createRequest(branchID, clientID, serviceID))
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	clientID := env.addClient()
	serviceID := env.addService(branchID, 60, 500)
	env.addTimeSlot(branchID, time.Monday, "09:00", "12:00", 2)

	first, err := srv.CreateBooking(ctx, createRequest(branchID, clientID, serviceID))
	require.NoError(t, err)

	second, err := srv.CreateBooking(ctx, createRequest(branchID, clientID, serviceID))
	require.NoError(t, err)
	assert.NotEqual(t, first.Reference, second.Reference)

	// The third overlapping booking oversells the rule and must be denied
	// before any row is written.
	before, _ := env.bookings.CountByBranchAndDate(ctx, branchID, monday)
	_, err = srv.CreateBooking(ctx, createRequest(branchID, clientID, serviceID))
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrCapacityExceeded)

	after, _ := env.bookings.CountByBranchAndDate(ctx, branchID, monday)
	assert.Equal(t, before, after)

	// A window clear of the saturated rule still books fine.
	req := createRequest(branchID, clientID, serviceID)
	req.StartTime = "12:00"
	_, err = srv.CreateBooking(ctx, req)
	require.NoError(t, err)
}

func TestCreateBookingValidationFailure(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()

	_, err := srv.CreateBooking(context.Background(), &request.CreateBookingRequest{
		BranchID:  "not-a-uuid",
		ClientID:  "also-not",
		ServiceID: "nope",
		Date:      "yesterday",
		StartTime: "noon",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestGetBookingByID(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	booking := env.addBooking(branchID, entity.BookingStatusConfirmed, monday, "10:00", "11:00", 500)
	env.addCompletedPayment(booking.ID, 500)

	resp, err := srv.GetBookingByID(ctx, booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, resp.Reference)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, float64(500), resp.Payment.Amount)

	_, err = srv.GetBookingByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetBookingByReference(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	booking := env.addBooking(branchID, entity.BookingStatusPending, monday, "10:00", "11:00", 500)

	resp, err := srv.GetBookingByReference(ctx, booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), resp.ID)

	_, err = srv.GetBookingByReference(ctx, "APT-19700101-000000-0000")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetBranchBookings(t *testing.T) {
	env := newTestEnv()
	srv := env.newBookingService()
	ctx := context.Background()

	branchID := env.addBranch()
	env.addBooking(branchID, entity.BookingStatusPending, monday, "09:00", "10:00", 300)
	env.addBooking(branchID, entity.BookingStatusConfirmed, monday, "10:00", "11:00", 300)
	env.addBooking(branchID, entity.BookingStatusPending, monday.AddDate(0, 0, 1), "09:00", "10:00", 300)

	resp, err := srv.GetBranchBookings(ctx, branchID.String(), mondayStr, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}
