package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They copy entities on the way in and out so
// the usecases' mutate-then-Update pattern behaves like it does against the
// database.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func copyBooking(b *entity.Booking) *entity.Booking {
	clone := *b
	return &clone
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %s already exists", booking.ID)
	}
	f.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, booking := range f.bookings {
		if booking.Reference == reference {
			return copyBooking(booking), nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.BranchID == branchID && sameDate(booking.AppointmentDate, date) {
			result = append(result, copyBooking(booking))
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (int64, error) {
	bookings, _ := f.FindByBranchAndDate(ctx, branchID, date, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	f.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (f *fakeBookingRepo) CountOverlapping(ctx context.Context, branchID uuid.UUID, date time.Time, start, end time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, booking := range f.bookings {
		if booking.BranchID != branchID || !sameDate(booking.AppointmentDate, date) {
			continue
		}
		if booking.Status == entity.BookingStatusCancelled {
			continue
		}
		if entity.IntervalsOverlap(
			entity.MinuteOfDay(booking.StartTime), entity.MinuteOfDay(booking.EndTime),
			entity.MinuteOfDay(start), entity.MinuteOfDay(end),
		) {
			count++
		}
	}
	return count, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment // keyed by booking ID
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func copyPayment(p *entity.Payment) *entity.Payment {
	clone := *p
	return &clone
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, payment := range f.payments {
		if payment.ID == id {
			return copyPayment(payment), nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[bookingID]
	if !ok {
		return nil, nil
	}
	return copyPayment(payment), nil
}

func (f *fakePaymentRepo) Upsert(ctx context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[payment.BookingID] = copyPayment(payment)
	return nil
}

type fakeTimeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*entity.TimeSlot
}

func newFakeTimeSlotRepo() *fakeTimeSlotRepo {
	return &fakeTimeSlotRepo{slots: make(map[uuid.UUID]*entity.TimeSlot)}
}

func copySlot(s *entity.TimeSlot) *entity.TimeSlot {
	clone := *s
	return &clone
}

func (f *fakeTimeSlotRepo) Create(ctx context.Context, slot *entity.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[slot.ID] = copySlot(slot)
	return nil
}

func (f *fakeTimeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	return copySlot(slot), nil
}

func (f *fakeTimeSlotRepo) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.TimeSlot
	for _, slot := range f.slots {
		if slot.BranchID == branchID {
			result = append(result, copySlot(slot))
		}
	}
	return result, nil
}

func (f *fakeTimeSlotRepo) FindActiveByBranchAndDay(ctx context.Context, branchID uuid.UUID, day time.Weekday) ([]*entity.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.TimeSlot
	for _, slot := range f.slots {
		if slot.BranchID == branchID && slot.DayOfWeek == day && slot.IsActive {
			result = append(result, copySlot(slot))
		}
	}
	return result, nil
}

func (f *fakeTimeSlotRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return fmt.Errorf("time slot %s not found", id)
	}
	slot.IsActive = false
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.ServiceOffering
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.ServiceOffering)}
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	clone := *service
	return &clone, nil
}

func (f *fakeServiceRepo) FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.ServiceOffering, error) {
	var result []*entity.ServiceOffering
	for _, service := range f.services {
		if service.BranchID == branchID && service.IsActive {
			clone := *service
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeBranchRepo struct {
	branches map[uuid.UUID]*entity.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[uuid.UUID]*entity.Branch)}
}

func (f *fakeBranchRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, nil
	}
	clone := *branch
	return &clone, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	clone := *client
	return &clone, nil
}

// fakeTxManager runs the unit of work directly against the fake-backed
// repository set; atomicity is not modeled.
type fakeTxManager struct {
	repo *repository.Repository
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	return fn(m.repo)
}

// testEnv bundles the fake-backed wiring for usecase tests.
type testEnv struct {
	repo     *repository.Repository
	tx       repository.TxManager
	config   *utils.Config
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	slots    *fakeTimeSlotRepo
	services *fakeServiceRepo
	branches *fakeBranchRepo
	clients  *fakeClientRepo
}

func newTestEnv() *testEnv {
	bookings := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	slots := newFakeTimeSlotRepo()
	services := newFakeServiceRepo()
	branches := newFakeBranchRepo()
	clients := newFakeClientRepo()

	repo := &repository.Repository{
		Branch:   branches,
		Client:   clients,
		Service:  services,
		TimeSlot: slots,
		Booking:  bookings,
		Payment:  payments,
	}

	return &testEnv{
		repo:     repo,
		tx:       &fakeTxManager{repo: repo},
		config:   &utils.Config{Booking: utils.BookingConfig{DefaultDurationMinutes: 60}},
		bookings: bookings,
		payments: payments,
		slots:    slots,
		services: services,
		branches: branches,
		clients:  clients,
	}
}

func (e *testEnv) newLifecycleService() LifecycleService {
	return NewLifecycleService(e.tx, e.config, zap.NewNop())
}

func (e *testEnv) newBookingService() BookingService {
	return NewBookingService(e.repo, e.tx, e.config, zap.NewNop())
}

func (e *testEnv) newAvailabilityService() AvailabilityService {
	return NewAvailabilityService(e.repo, zap.NewNop())
}

// mustClock parses HH:MM, panicking on bad test data.
func mustClock(value string) time.Time {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func (e *testEnv) addBranch() uuid.UUID {
	id := uuid.New()
	e.branches.branches[id] = &entity.Branch{
		Base:     entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     "Downtown",
		IsActive: true,
	}
	return id
}

func (e *testEnv) addClient() uuid.UUID {
	id := uuid.New()
	e.clients.clients[id] = &entity.Client{
		Base: entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name: "Alex",
	}
	return id
}

func (e *testEnv) addService(branchID uuid.UUID, durationMinutes int, price float64) uuid.UUID {
	id := uuid.New()
	e.services.services[id] = &entity.ServiceOffering{
		Base:            entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BranchID:        branchID,
		Name:            "Deep Tissue Massage",
		DurationMinutes: durationMinutes,
		Price:           price,
		IsActive:        true,
	}
	return id
}

func (e *testEnv) addTimeSlot(branchID uuid.UUID, day time.Weekday, start, end string, maxBookings int) uuid.UUID {
	id := uuid.New()
	e.slots.slots[id] = &entity.TimeSlot{
		Base:        entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BranchID:    branchID,
		DayOfWeek:   day,
		StartTime:   mustClock(start),
		EndTime:     mustClock(end),
		MaxBookings: maxBookings,
		IsActive:    true,
	}
	return id
}

func (e *testEnv) addBooking(branchID uuid.UUID, status entity.BookingStatus, date time.Time, start, end string, total float64) *entity.Booking {
	booking := &entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:       utils.GenerateBookingReference(),
		BranchID:        branchID,
		ClientID:        uuid.New(),
		ServiceID:       uuid.New(),
		AppointmentDate: date,
		StartTime:       mustClock(start),
		EndTime:         mustClock(end),
		Status:          status,
		PaymentStatus:   entity.PaymentStatusPending,
		TotalAmount:     total,
	}
	e.bookings.bookings[booking.ID] = booking
	return booking
}

func (e *testEnv) addCompletedPayment(bookingID uuid.UUID, amount float64) {
	e.payments.payments[bookingID] = &entity.Payment{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingID: bookingID,
		Amount:    amount,
		Method:    "card",
		Status:    entity.PaymentStatusCompleted,
	}
}
