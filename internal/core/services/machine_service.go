package services

import (
	"context"
	"errors"
	"log"

	"machinehub/internal/adapters/persistence/models"
	"machinehub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Machine service errors
var (
	ErrMachineNotFound  = errors.New("machine not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotMachineOwner  = errors.New("machine belongs to another owner")
)

// MachineService handles machine listing business logic
type MachineService struct {
	machineRepo  repositories.MachineRepository
	categoryRepo repositories.CategoryRepository
}

// NewMachineService creates a new machine service
func NewMachineService(
	machineRepo repositories.MachineRepository,
	categoryRepo repositories.CategoryRepository,
) *MachineService {
	return &MachineService{
		machineRepo:  machineRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateMachineInput represents create machine input
type CreateMachineInput struct {
	CategoryID  uint    `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	DailyRate   float64 `json:"daily_rate" validate:"required,gt=0"`
	Location    string  `json:"location"`
}

// UpdateMachineInput represents update machine input
type UpdateMachineInput struct {
	CategoryID  *uint    `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DailyRate   *float64 `json:"daily_rate"`
	Location    *string  `json:"location"`
	IsActive    *bool    `json:"is_active"`
}

// ListMachinesInput represents list machines input
type ListMachinesInput struct {
	CategoryID uint
	Location   string
	ActiveOnly bool
}

// ListCategories lists all machinery categories
func (s *MachineService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateMachine creates a machine listing for an owner
func (s *MachineService) CreateMachine(ctx context.Context, ownerID uint, input *CreateMachineInput) (*models.MachineResponse, error) {
	// 1. Validate category exists
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	// 2. Create machine
	machine := &models.Machine{
		OwnerID:     ownerID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		DailyRate:   input.DailyRate,
		Location:    input.Location,
		IsActive:    true,
	}

	if err := s.machineRepo.Create(ctx, machine); err != nil {
		return nil, err
	}

	log.Printf("✅ Machine listed: %s (owner ID: %d)", machine.Name, ownerID)
	return machine.ToResponse(), nil
}

// GetMachine gets a machine by ID
func (s *MachineService) GetMachine(ctx context.Context, id uint) (*models.MachineResponse, error) {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	return machine.ToResponse(), nil
}

// UpdateMachine updates a machine. Only the owning user (or an admin,
// signalled by isAdmin) may update it.
func (s *MachineService) UpdateMachine(ctx context.Context, id uint, actorID uint, isAdmin bool, input *UpdateMachineInput) (*models.MachineResponse, error) {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}

	if !isAdmin && machine.OwnerID != actorID {
		return nil, ErrNotMachineOwner
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		machine.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		machine.Name = *input.Name
	}
	if input.Description != nil {
		machine.Description = *input.Description
	}
	if input.DailyRate != nil {
		machine.DailyRate = *input.DailyRate
	}
	if input.Location != nil {
		machine.Location = *input.Location
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}

	if err := s.machineRepo.Update(ctx, machine); err != nil {
		return nil, err
	}

	return machine.ToResponse(), nil
}

// DeleteMachine soft deletes a machine (owner or admin)
func (s *MachineService) DeleteMachine(ctx context.Context, id uint, actorID uint, isAdmin bool) error {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMachineNotFound
		}
		return err
	}

	if !isAdmin && machine.OwnerID != actorID {
		return ErrNotMachineOwner
	}

	return s.machineRepo.Delete(ctx, id)
}

// ListMachines lists machines with filtering and pagination
func (s *MachineService) ListMachines(ctx context.Context, input *ListMachinesInput, offset, limit int) ([]*models.MachineResponse, int64, error) {
	filter := repositories.MachineFilter{
		CategoryID: input.CategoryID,
		Location:   input.Location,
		ActiveOnly: input.ActiveOnly,
	}

	machines, total, err := s.machineRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.MachineResponse, len(machines))
	for i, m := range machines {
		responses[i] = m.ToResponse()
	}

	return responses, total, nil
}

// ListOwnMachines lists all machines belonging to an owner
func (s *MachineService) ListOwnMachines(ctx context.Context, ownerID uint) ([]*models.MachineResponse, error) {
	machines, err := s.machineRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.MachineResponse, len(machines))
	for i, m := range machines {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}
