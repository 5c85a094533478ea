package config

import (
	"log"

	"machinehub/internal/adapters/persistence/models"
	"machinehub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedData seeds categories and the initial admin account
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedCategories(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedCategories seeds the machinery category master data
func (s *Seeder) seedCategories() error {
	categories := []models.Category{
		{Code: "EXCAVATOR", Name: "Excavators"},
		{Code: "LOADER", Name: "Loaders"},
		{Code: "CRANE", Name: "Cranes"},
		{Code: "TRACTOR", Name: "Tractors"},
		{Code: "COMPACTOR", Name: "Compactors"},
		{Code: "GENERATOR", Name: "Generators"},
	}

	for _, category := range categories {
		var count int64
		s.db.Model(&models.Category{}).Where("code = ?", category.Code).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&category).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@machinehub.local",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
