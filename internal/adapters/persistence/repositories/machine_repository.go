package repositories

import (
	"context"

	"machinehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// machineRepository implements MachineRepository interface
type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

// Create creates a new machine listing
func (r *machineRepository) Create(ctx context.Context, machine *models.Machine) error {
	return r.db.WithContext(ctx).Create(machine).Error
}

// GetByID gets a machine with owner and category preloaded
func (r *machineRepository) GetByID(ctx context.Context, id uint) (*models.Machine, error) {
	var machine models.Machine
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Category").
		Where("id = ?", id).
		First(&machine).Error
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

// Update updates a machine
func (r *machineRepository) Update(ctx context.Context, machine *models.Machine) error {
	return r.db.WithContext(ctx).Save(machine).Error
}

// Delete soft deletes a machine
func (r *machineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Machine{}, id).Error
}

// List lists machines with filtering and pagination
func (r *machineRepository) List(ctx context.Context, filter MachineFilter, offset, limit int) ([]*models.Machine, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Machine{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var machines []*models.Machine
	err := query.
		Preload("Owner").
		Preload("Category").
		Offset(offset).
		Limit(limit).
		Order("id").
		Find(&machines).Error
	if err != nil {
		return nil, 0, err
	}

	return machines, total, nil
}

// ListByOwner lists all machines belonging to an owner
func (r *machineRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Machine, error) {
	var machines []*models.Machine
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&machines).Error
	if err != nil {
		return nil, err
	}
	return machines, nil
}

// CountByOwner counts machines belonging to an owner
func (r *machineRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Machine{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
