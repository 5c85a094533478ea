package services

import (
	"context"
	"errors"
	"log"
	"time"

	"machinehub/internal/adapters/persistence/models"
	"machinehub/internal/adapters/persistence/repositories"
	"machinehub/internal/core/domain"

	"gorm.io/gorm"
)

// Booking service errors
var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrInvalidDateFormat   = errors.New("dates must be in YYYY-MM-DD format")
	ErrDatesUnavailable    = errors.New("requested dates are not available")
	ErrMachineInactive     = errors.New("machine is not accepting bookings")
	ErrNotBookingOwner     = errors.New("booking belongs to another customer")
	ErrNotBookingRecipient = errors.New("booking is not on one of your machines")
	ErrInvalidStatusChange = errors.New("booking status does not allow this change")
)

// BookingService handles booking business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	machineRepo repositories.MachineRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	machineRepo repositories.MachineRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		machineRepo: machineRepo,
	}
}

// CreateBookingInput represents create booking input
type CreateBookingInput struct {
	MachineID uint   `json:"machine_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Remark    string `json:"remark"`
}

// GroupedBookingsOutput represents bookings partitioned by lifecycle
// state, in fixed bucket order, plus any rows carrying a status outside
// the enumeration (data from older schema versions)
type GroupedBookingsOutput struct {
	Groups  domain.StatusGroups    `json:"groups"`
	Order   []domain.BookingStatus `json:"order"`
	Unknown []domain.BookingRecord `json:"unknown,omitempty"`
}

// AvailabilityOutput represents a machine's blocked dates in a window
type AvailabilityOutput struct {
	MachineID    uint     `json:"machine_id"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	BlockedDates []string `json:"blocked_dates"`
}

// CreateBooking creates a PENDING booking after checking the requested
// range against existing blocking bookings on the machine
func (s *BookingService) CreateBooking(ctx context.Context, customerID uint, input *CreateBookingInput) (*models.BookingResponse, error) {
	// 1. Parse and validate the date range
	start, err := time.Parse(domain.DateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse(domain.DateLayout, input.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	// 2. Check machine exists and is active
	machine, err := s.machineRepo.GetByID(ctx, input.MachineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	if !machine.IsActive {
		return nil, ErrMachineInactive
	}

	// 3. Check the range against blocking bookings
	existing, err := s.bookingRepo.ListByMachine(ctx, input.MachineID)
	if err != nil {
		return nil, err
	}
	if domain.HasBlockingOverlap(models.ToRecords(existing), start, end, domain.DefaultBlockingPolicy) {
		return nil, ErrDatesUnavailable
	}

	// 4. Price: total = days × daily rate, closed interval
	days := int(end.Sub(start).Hours()/24) + 1
	totalPrice := float64(days) * machine.DailyRate

	// 5. Create booking
	booking := &models.Booking{
		MachineID:  input.MachineID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		Status:     string(domain.StatusPending),
		TotalPrice: totalPrice,
		Remark:     input.Remark,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking created: machine %d, %s to %s (customer ID: %d)",
		input.MachineID, input.StartDate, input.EndDate, customerID)

	booking.Machine = machine
	return booking.ToResponse(), nil
}

// GetBooking gets a booking visible to the actor: the customer who made
// it, the owner of the machine, or an admin
func (s *BookingService) GetBooking(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !isAdmin && booking.CustomerID != actorID &&
		(booking.Machine == nil || booking.Machine.OwnerID != actorID) {
		return nil, ErrBookingNotFound
	}

	return booking.ToResponse(), nil
}

// ListMyBookings lists a customer's bookings grouped by lifecycle state
func (s *BookingService) ListMyBookings(ctx context.Context, customerID uint) (*GroupedBookingsOutput, error) {
	bookings, err := s.bookingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return groupBookings(bookings), nil
}

// ListOwnerBookings lists bookings on an owner's machines grouped by
// lifecycle state
func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID uint) (*GroupedBookingsOutput, error) {
	bookings, err := s.bookingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return groupBookings(bookings), nil
}

// GetAvailability computes a machine's blocked dates in [from, to].
// includePending widens the blocking policy to PENDING bookings.
func (s *BookingService) GetAvailability(ctx context.Context, machineID uint, fromStr, toStr string, includePending bool) (*AvailabilityOutput, error) {
	from, err := time.Parse(domain.DateLayout, fromStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	to, err := time.Parse(domain.DateLayout, toStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.machineRepo.GetByID(ctx, machineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByMachine(ctx, machineID)
	if err != nil {
		return nil, err
	}

	policy := domain.DefaultBlockingPolicy
	if includePending {
		policy = domain.StrictBlockingPolicy
	}

	days := domain.BlockedDates(models.ToRecords(bookings), from, to, policy)

	blocked := make([]string, len(days))
	for i, day := range days {
		blocked[i] = day.Format(domain.DateLayout)
	}

	return &AvailabilityOutput{
		MachineID:    machineID,
		From:         fromStr,
		To:           toStr,
		BlockedDates: blocked,
	}, nil
}

// CancelBooking cancels a booking. Customers can cancel their own
// PENDING or CONFIRMED bookings; started or finished rentals cannot be
// cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !isAdmin && booking.CustomerID != actorID {
		return nil, ErrNotBookingOwner
	}

	switch domain.BookingStatus(booking.Status) {
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return nil, ErrInvalidStatusChange
	}

	booking.Status = string(domain.StatusCancelled)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %d cancelled", booking.ID)
	return booking.ToResponse(), nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED. Only the owner
// of the booked machine (or an admin) may confirm.
func (s *BookingService) ConfirmBooking(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.BookingResponse, error) {
	return s.decideBooking(ctx, id, actorID, isAdmin, domain.StatusConfirmed)
}

// RejectBooking moves a PENDING booking to CANCELLED. Only the owner
// of the booked machine (or an admin) may reject.
func (s *BookingService) RejectBooking(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.BookingResponse, error) {
	return s.decideBooking(ctx, id, actorID, isAdmin, domain.StatusCancelled)
}

func (s *BookingService) decideBooking(ctx context.Context, id uint, actorID uint, isAdmin bool, next domain.BookingStatus) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Machine == nil {
		return nil, ErrMachineNotFound
	}
	if !isAdmin && booking.Machine.OwnerID != actorID {
		return nil, ErrNotBookingRecipient
	}

	// Only PENDING bookings await an owner decision
	if domain.BookingStatus(booking.Status) != domain.StatusPending {
		return nil, ErrInvalidStatusChange
	}

	// Confirming re-checks the range: another booking may have been
	// confirmed since this one was placed
	if next == domain.StatusConfirmed {
		existing, err := s.bookingRepo.ListByMachine(ctx, booking.MachineID)
		if err != nil {
			return nil, err
		}

		others := make([]domain.BookingRecord, 0, len(existing))
		for _, b := range existing {
			if b.ID != booking.ID {
				others = append(others, b.ToRecord())
			}
		}
		if domain.HasBlockingOverlap(others, booking.StartDate, booking.EndDate, domain.DefaultBlockingPolicy) {
			return nil, ErrDatesUnavailable
		}
	}

	booking.Status = string(next)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %d → %s (by user ID: %d)", booking.ID, next, actorID)
	return booking.ToResponse(), nil
}

// groupBookings partitions booking rows into lifecycle buckets
func groupBookings(bookings []*models.Booking) *GroupedBookingsOutput {
	records := models.ToRecords(bookings)
	return &GroupedBookingsOutput{
		Groups:  domain.GroupByStatus(records),
		Order:   domain.StatusOrder,
		Unknown: domain.UnknownStatuses(records),
	}
}
