package repositories

import (
	"context"
	"time"

	"machinehub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
}

// MachineRepository defines machine repository interface
type MachineRepository interface {
	Create(ctx context.Context, machine *models.Machine) error
	GetByID(ctx context.Context, id uint) (*models.Machine, error)
	Update(ctx context.Context, machine *models.Machine) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter MachineFilter, offset, limit int) ([]*models.Machine, int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Machine, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// MachineFilter narrows machine listings
type MachineFilter struct {
	CategoryID uint
	Location   string
	ActiveOnly bool
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	ListByMachine(ctx context.Context, machineID uint) ([]*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Booking, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	RollStatusForward(ctx context.Context, from, to string, boundary time.Time) (int64, error)
	ExpireStalePending(ctx context.Context, olderThan time.Time) (int64, error)
	CountByStatusForOwner(ctx context.Context, ownerID uint) (map[string]int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
