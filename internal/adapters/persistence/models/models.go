package models

import (
	"time"

	"machinehub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'CUSTOMER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Marketplace Tables
// ============================================================

// Category represents machinery category master data
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Machine represents a rentable machine listing
type Machine struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	DailyRate   float64        `gorm:"type:decimal(10,2);not null" json:"daily_rate"`
	Location    string         `gorm:"size:200" json:"location"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Machine) TableName() string {
	return "machines"
}

// MachineResponse DTO
type MachineResponse struct {
	ID           uint      `json:"id"`
	OwnerID      uint      `json:"owner_id"`
	OwnerName    string    `json:"owner_name,omitempty"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DailyRate    float64   `json:"daily_rate"`
	Location     string    `json:"location"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (m *Machine) ToResponse() *MachineResponse {
	resp := &MachineResponse{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		DailyRate:   m.DailyRate,
		Location:    m.Location,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}

	if m.Owner != nil {
		resp.OwnerName = m.Owner.Username
	}
	if m.Category != nil {
		resp.CategoryName = m.Category.Name
	}

	return resp
}

// Booking represents a machine booking for a closed date interval
type Booking struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MachineID  uint           `gorm:"not null;index" json:"machine_id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	StartDate  time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time      `gorm:"type:date;not null" json:"end_date"`
	Status     string         `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	TotalPrice float64        `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Remark     string         `gorm:"type:text" json:"remark"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Machine  *Machine `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	Customer *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO
type BookingResponse struct {
	ID           uint      `json:"id"`
	MachineID    uint      `json:"machine_id"`
	MachineName  string    `json:"machine_name,omitempty"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:         b.ID,
		MachineID:  b.MachineID,
		CustomerID: b.CustomerID,
		StartDate:  b.StartDate.Format(domain.DateLayout),
		EndDate:    b.EndDate.Format(domain.DateLayout),
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		Remark:     b.Remark,
		CreatedAt:  b.CreatedAt,
	}

	if b.Machine != nil {
		resp.MachineName = b.Machine.Name
	}
	if b.Customer != nil {
		resp.CustomerName = b.Customer.Username
	}

	return resp
}

// ToRecord converts a booking row to the wire form consumed by the
// availability evaluator and status grouping
func (b *Booking) ToRecord() domain.BookingRecord {
	return domain.BookingRecord{
		ID:        b.ID,
		MachineID: b.MachineID,
		StartDate: b.StartDate.Format(domain.DateLayout),
		EndDate:   b.EndDate.Format(domain.DateLayout),
		Status:    domain.BookingStatus(b.Status),
	}
}

// ToRecords converts booking rows to wire records, preserving order
func ToRecords(bookings []*Booking) []domain.BookingRecord {
	records := make([]domain.BookingRecord, len(bookings))
	for i, b := range bookings {
		records[i] = b.ToRecord()
	}
	return records
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Category{},
		&Machine{},
		&Booking{},
	)
}
