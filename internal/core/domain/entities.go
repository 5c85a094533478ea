package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOwner    Role = "OWNER"
	RoleCustomer Role = "CUSTOMER"
)

// ValidRole checks if a role string is one of the known roles
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleOwner, RoleCustomer:
		return true
	}
	return false
}

// BookingStatus represents a booking lifecycle state
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusOngoing   BookingStatus = "ONGOING"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// StatusOrder is the fixed display order of booking lifecycle buckets
var StatusOrder = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOngoing,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus checks if a status is one of the known lifecycle states
func ValidStatus(s BookingStatus) bool {
	for _, known := range StatusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category represents a machinery category
type Category struct {
	ID   uint
	Code string
	Name string
}

// Machine represents a rentable machine in the domain
type Machine struct {
	ID          uint
	OwnerID     uint
	CategoryID  uint
	Name        string
	Description string
	DailyRate   float64
	Location    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingRecord represents a booking as carried on the wire.
// Dates are calendar-date strings (DateLayout); the availability
// evaluator parses them per query and treats unparseable values as
// non-blocking.
type BookingRecord struct {
	ID        uint          `json:"id"`
	MachineID uint          `json:"machine_id"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Status    BookingStatus `json:"status"`
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
