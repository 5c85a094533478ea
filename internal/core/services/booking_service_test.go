package services

import (
	"context"
	"testing"
	"time"

	"machinehub/internal/adapters/persistence/models"
	"machinehub/internal/adapters/persistence/repositories"
	"machinehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMachineRepo is an in-memory MachineRepository
type fakeMachineRepo struct {
	machines map[uint]*models.Machine
}

func newFakeMachineRepo(machines ...*models.Machine) *fakeMachineRepo {
	repo := &fakeMachineRepo{machines: make(map[uint]*models.Machine)}
	for _, m := range machines {
		repo.machines[m.ID] = m
	}
	return repo
}

func (r *fakeMachineRepo) Create(ctx context.Context, machine *models.Machine) error {
	machine.ID = uint(len(r.machines) + 1)
	r.machines[machine.ID] = machine
	return nil
}

func (r *fakeMachineRepo) GetByID(ctx context.Context, id uint) (*models.Machine, error) {
	machine, ok := r.machines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return machine, nil
}

func (r *fakeMachineRepo) Update(ctx context.Context, machine *models.Machine) error {
	r.machines[machine.ID] = machine
	return nil
}

func (r *fakeMachineRepo) Delete(ctx context.Context, id uint) error {
	delete(r.machines, id)
	return nil
}

func (r *fakeMachineRepo) List(ctx context.Context, filter repositories.MachineFilter, offset, limit int) ([]*models.Machine, int64, error) {
	var machines []*models.Machine
	for _, m := range r.machines {
		machines = append(machines, m)
	}
	return machines, int64(len(machines)), nil
}

func (r *fakeMachineRepo) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Machine, error) {
	var machines []*models.Machine
	for _, m := range r.machines {
		if m.OwnerID == ownerID {
			machines = append(machines, m)
		}
	}
	return machines, nil
}

func (r *fakeMachineRepo) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	machines, _ := r.ListByOwner(ctx, ownerID)
	return int64(len(machines)), nil
}

// fakeBookingRepo is an in-memory BookingRepository
type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[uint]*models.Booking), nextID: 1}
	for _, b := range bookings {
		if b.ID >= repo.nextID {
			repo.nextID = b.ID + 1
		}
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) ListByMachine(ctx context.Context, machineID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.MachineID == machineID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.CustomerID == customerID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.bookings[id]; ok && b.Machine != nil && b.Machine.OwnerID == ownerID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) ListByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for _, b := range r.bookings {
		if b.Status == status {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) RollStatusForward(ctx context.Context, from, to string, boundary time.Time) (int64, error) {
	var changed int64
	for _, b := range r.bookings {
		if b.Status != from {
			continue
		}
		date := b.StartDate
		if from == "ONGOING" {
			date = b.EndDate
		}
		if !date.After(boundary) {
			b.Status = to
			changed++
		}
	}
	return changed, nil
}

func (r *fakeBookingRepo) ExpireStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	var changed int64
	for _, b := range r.bookings {
		if b.Status == "PENDING" && b.CreatedAt.Before(olderThan) {
			b.Status = "CANCELLED"
			changed++
		}
	}
	return changed, nil
}

func (r *fakeBookingRepo) CountByStatusForOwner(ctx context.Context, ownerID uint) (map[string]int64, error) {
	counts := make(map[string]int64)
	bookings, _ := r.ListByOwner(ctx, ownerID)
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateLayout, value)
	require.NoError(t, err)
	return date
}

func testMachine() *models.Machine {
	return &models.Machine{
		ID:        1,
		OwnerID:   10,
		Name:      "20t excavator",
		DailyRate: 500,
		IsActive:  true,
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), newFakeMachineRepo(testMachine()))
	ctx := context.Background()

	tests := []struct {
		name    string
		input   *CreateBookingInput
		wantErr error
	}{
		{
			name:    "garbled start date",
			input:   &CreateBookingInput{MachineID: 1, StartDate: "not-a-date", EndDate: "2026-09-05"},
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "end before start",
			input:   &CreateBookingInput{MachineID: 1, StartDate: "2026-09-05", EndDate: "2026-09-01"},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "unknown machine",
			input:   &CreateBookingInput{MachineID: 99, StartDate: "2026-09-01", EndDate: "2026-09-05"},
			wantErr: ErrMachineNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, 20, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingInactiveMachine(t *testing.T) {
	machine := testMachine()
	machine.IsActive = false
	svc := NewBookingService(newFakeBookingRepo(), newFakeMachineRepo(machine))

	_, err := svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	assert.ErrorIs(t, err, ErrMachineInactive)
}

func TestCreateBookingComputesPrice(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), newFakeMachineRepo(testMachine()))

	booking, err := svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	require.NoError(t, err)

	// Closed interval: 5 days at 500/day
	assert.Equal(t, 2500.0, booking.TotalPrice)
	assert.Equal(t, string(domain.StatusPending), booking.Status)
}

func TestCreateBookingSingleDay(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), newFakeMachineRepo(testMachine()))

	booking, err := svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-01", EndDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, booking.TotalPrice)
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	existing := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 30,
		StartDate:  mustDate(t, "2026-09-03"),
		EndDate:    mustDate(t, "2026-09-07"),
		Status:     string(domain.StatusConfirmed),
	}
	svc := NewBookingService(newFakeBookingRepo(existing), newFakeMachineRepo(testMachine()))

	// Touches the confirmed booking's first day
	_, err := svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-01", EndDate: "2026-09-03",
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	// Ends the day before: allowed
	_, err = svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-01", EndDate: "2026-09-02",
	})
	assert.NoError(t, err)
}

func TestCreateBookingPendingDoesNotBlock(t *testing.T) {
	existing := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 30,
		StartDate:  mustDate(t, "2026-09-03"),
		EndDate:    mustDate(t, "2026-09-07"),
		Status:     string(domain.StatusPending),
	}
	svc := NewBookingService(newFakeBookingRepo(existing), newFakeMachineRepo(testMachine()))

	_, err := svc.CreateBooking(context.Background(), 20, &CreateBookingInput{
		MachineID: 1, StartDate: "2026-09-03", EndDate: "2026-09-05",
	})
	assert.NoError(t, err)
}

func TestConfirmBooking(t *testing.T) {
	machine := testMachine()
	pending := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 20,
		StartDate:  mustDate(t, "2026-09-01"),
		EndDate:    mustDate(t, "2026-09-05"),
		Status:     string(domain.StatusPending),
		Machine:    machine,
	}
	svc := NewBookingService(newFakeBookingRepo(pending), newFakeMachineRepo(machine))
	ctx := context.Background()

	// Someone else's machine
	_, err := svc.ConfirmBooking(ctx, 1, 99, false)
	assert.ErrorIs(t, err, ErrNotBookingRecipient)

	// Owner confirms
	booking, err := svc.ConfirmBooking(ctx, 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), booking.Status)

	// Already decided
	_, err = svc.ConfirmBooking(ctx, 1, 10, false)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestConfirmBookingRechecksOverlap(t *testing.T) {
	machine := testMachine()
	confirmed := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 30,
		StartDate:  mustDate(t, "2026-09-01"),
		EndDate:    mustDate(t, "2026-09-05"),
		Status:     string(domain.StatusConfirmed),
		Machine:    machine,
	}
	pending := &models.Booking{
		ID:         2,
		MachineID:  1,
		CustomerID: 20,
		StartDate:  mustDate(t, "2026-09-04"),
		EndDate:    mustDate(t, "2026-09-08"),
		Status:     string(domain.StatusPending),
		Machine:    machine,
	}
	svc := NewBookingService(newFakeBookingRepo(confirmed, pending), newFakeMachineRepo(machine))

	_, err := svc.ConfirmBooking(context.Background(), 2, 10, false)
	assert.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestRejectBooking(t *testing.T) {
	machine := testMachine()
	pending := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 20,
		StartDate:  mustDate(t, "2026-09-01"),
		EndDate:    mustDate(t, "2026-09-05"),
		Status:     string(domain.StatusPending),
		Machine:    machine,
	}
	svc := NewBookingService(newFakeBookingRepo(pending), newFakeMachineRepo(machine))

	booking, err := svc.RejectBooking(context.Background(), 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), booking.Status)
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		actorID uint
		wantErr error
	}{
		{name: "pending by customer", status: domain.StatusPending, actorID: 20},
		{name: "confirmed by customer", status: domain.StatusConfirmed, actorID: 20},
		{name: "ongoing cannot be cancelled", status: domain.StatusOngoing, actorID: 20, wantErr: ErrInvalidStatusChange},
		{name: "completed cannot be cancelled", status: domain.StatusCompleted, actorID: 20, wantErr: ErrInvalidStatusChange},
		{name: "someone else's booking", status: domain.StatusPending, actorID: 99, wantErr: ErrNotBookingOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &models.Booking{
				ID:         1,
				MachineID:  1,
				CustomerID: 20,
				StartDate:  mustDate(t, "2026-09-01"),
				EndDate:    mustDate(t, "2026-09-05"),
				Status:     string(tt.status),
			}
			svc := NewBookingService(newFakeBookingRepo(booking), newFakeMachineRepo(testMachine()))

			result, err := svc.CancelBooking(context.Background(), 1, tt.actorID, false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), result.Status)
		})
	}
}

func TestGetAvailability(t *testing.T) {
	confirmed := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 30,
		StartDate:  mustDate(t, "2026-09-03"),
		EndDate:    mustDate(t, "2026-09-04"),
		Status:     string(domain.StatusConfirmed),
	}
	pending := &models.Booking{
		ID:         2,
		MachineID:  1,
		CustomerID: 31,
		StartDate:  mustDate(t, "2026-09-06"),
		EndDate:    mustDate(t, "2026-09-06"),
		Status:     string(domain.StatusPending),
	}
	svc := NewBookingService(newFakeBookingRepo(confirmed, pending), newFakeMachineRepo(testMachine()))
	ctx := context.Background()

	result, err := svc.GetAvailability(ctx, 1, "2026-09-01", "2026-09-07", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-03", "2026-09-04"}, result.BlockedDates)

	result, err = svc.GetAvailability(ctx, 1, "2026-09-01", "2026-09-07", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-03", "2026-09-04", "2026-09-06"}, result.BlockedDates)
}

func TestGetAvailabilityValidation(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), newFakeMachineRepo(testMachine()))
	ctx := context.Background()

	_, err := svc.GetAvailability(ctx, 1, "bogus", "2026-09-07", false)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = svc.GetAvailability(ctx, 1, "2026-09-07", "2026-09-01", false)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetAvailability(ctx, 99, "2026-09-01", "2026-09-07", false)
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestListMyBookingsGrouped(t *testing.T) {
	first := &models.Booking{
		ID:         1,
		MachineID:  1,
		CustomerID: 20,
		StartDate:  mustDate(t, "2026-09-01"),
		EndDate:    mustDate(t, "2026-09-02"),
		Status:     string(domain.StatusPending),
	}
	second := &models.Booking{
		ID:         2,
		MachineID:  1,
		CustomerID: 20,
		StartDate:  mustDate(t, "2026-09-10"),
		EndDate:    mustDate(t, "2026-09-12"),
		Status:     string(domain.StatusCompleted),
	}
	svc := NewBookingService(newFakeBookingRepo(first, second), newFakeMachineRepo(testMachine()))

	result, err := svc.ListMyBookings(context.Background(), 20)
	require.NoError(t, err)

	// Every bucket present, in fixed order
	assert.Equal(t, domain.StatusOrder, result.Order)
	assert.Len(t, result.Groups, len(domain.StatusOrder))
	assert.Len(t, result.Groups[domain.StatusPending], 1)
	assert.Len(t, result.Groups[domain.StatusCompleted], 1)
	assert.Empty(t, result.Groups[domain.StatusConfirmed])
	assert.Empty(t, result.Unknown)
}
