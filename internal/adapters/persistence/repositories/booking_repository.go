package repositories

import (
	"context"
	"time"

	"machinehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking with machine and customer preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Preload("Customer").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// ListByMachine lists all bookings for a machine
func (r *bookingRepository) ListByMachine(ctx context.Context, machineID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Order("start_date").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByCustomer lists all bookings made by a customer
func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByOwner lists all bookings on machines belonging to an owner
func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Preload("Customer").
		Joins("JOIN machines ON machines.id = bookings.machine_id").
		Where("machines.owner_id = ?", ownerID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByStatus lists all bookings in a lifecycle state
func (r *bookingRepository) ListByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus updates a booking's status
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// RollStatusForward moves bookings from one lifecycle state to the next
// once the boundary date is reached: CONFIRMED bookings whose start_date
// has arrived become ONGOING, ONGOING bookings whose end_date has passed
// become COMPLETED. Returns the number of rows changed.
func (r *bookingRepository) RollStatusForward(ctx context.Context, from, to string, boundary time.Time) (int64, error) {
	column := "start_date"
	if from == "ONGOING" {
		column = "end_date"
	}

	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", from).
		Where(column+" <= ?", boundary).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// ExpireStalePending cancels PENDING bookings created before olderThan
func (r *bookingRepository) ExpireStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", "PENDING").
		Where("created_at < ?", olderThan).
		Update("status", "CANCELLED")
	return result.RowsAffected, result.Error
}

// CountByStatusForOwner counts an owner's bookings per lifecycle state
func (r *bookingRepository) CountByStatusForOwner(ctx context.Context, ownerID uint) (map[string]int64, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.status AS status, COUNT(*) AS count").
		Joins("JOIN machines ON machines.id = bookings.machine_id").
		Where("machines.owner_id = ?", ownerID).
		Group("bookings.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByStatus counts all bookings per lifecycle state
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status AS status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
