package services

import (
	"context"

	"machinehub/internal/adapters/persistence/repositories"
	"machinehub/internal/core/domain"
)

// DashboardService aggregates statistics for owner and admin views
type DashboardService struct {
	userRepo    repositories.UserRepository
	machineRepo repositories.MachineRepository
	bookingRepo repositories.BookingRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	machineRepo repositories.MachineRepository,
	bookingRepo repositories.BookingRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		machineRepo: machineRepo,
		bookingRepo: bookingRepo,
	}
}

// OwnerDashboardData represents owner dashboard data
type OwnerDashboardData struct {
	TotalMachines    int64            `json:"total_machines"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	PendingDecisions int64            `json:"pending_decisions"`
	ActiveRentals    int64            `json:"active_rentals"`
	CompletedRentals int64            `json:"completed_rentals"`
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalUsers       int64            `json:"total_users"`
	TotalAdmins      int64            `json:"total_admins"`
	TotalOwners      int64            `json:"total_owners"`
	TotalCustomers   int64            `json:"total_customers"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
}

// GetOwnerDashboard returns dashboard data for a machine owner
func (s *DashboardService) GetOwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboardData, error) {
	data := &OwnerDashboardData{}

	machines, err := s.machineRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	data.TotalMachines = machines

	counts, err := s.bookingRepo.CountByStatusForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	data.BookingsByStatus = fullStatusCounts(counts)
	data.PendingDecisions = data.BookingsByStatus[string(domain.StatusPending)]
	data.ActiveRentals = data.BookingsByStatus[string(domain.StatusOngoing)]
	data.CompletedRentals = data.BookingsByStatus[string(domain.StatusCompleted)]

	return data, nil
}

// GetAdminDashboard returns platform-wide dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	var err error
	if data.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalAdmins, err = s.userRepo.CountByRole(ctx, string(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if data.TotalOwners, err = s.userRepo.CountByRole(ctx, string(domain.RoleOwner)); err != nil {
		return nil, err
	}
	if data.TotalCustomers, err = s.userRepo.CountByRole(ctx, string(domain.RoleCustomer)); err != nil {
		return nil, err
	}

	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	data.BookingsByStatus = fullStatusCounts(counts)

	return data, nil
}

// fullStatusCounts fills in zero counts so every lifecycle bucket is
// present in the response, matching the grouping behavior
func fullStatusCounts(counts map[string]int64) map[string]int64 {
	full := make(map[string]int64, len(domain.StatusOrder))
	for _, status := range domain.StatusOrder {
		full[string(status)] = counts[string(status)]
	}
	return full
}
