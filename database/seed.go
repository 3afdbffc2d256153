package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/services"
	"github.com/collegehub/cms-api/utils/auth"
	"github.com/collegehub/cms-api/utils/slug"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedRootCollege(); err != nil {
		return fmt.Errorf("failed to seed root college: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the bootstrap super admin
func (s *Seeder) SeedAdminUser() error {
	// Check if a super admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Super admin already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created super admin: %s\n", admin.Email)
	return nil
}

// SeedRootCollege creates the group-level parent college with its standard
// page catalogue
func (s *Seeder) SeedRootCollege() error {
	var count int64
	if err := s.db.Model(&model.College{}).Where("is_parent = ?", true).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Root college already exists, skipping...")
		return nil
	}

	name := os.Getenv("ROOT_COLLEGE_NAME")
	if name == "" {
		name = "CollegeHub Group"
	}

	college := &model.College{
		Name:     name,
		Slug:     slug.Make(name),
		IsParent: true,
		IsActive: true,
	}
	if err := s.db.Create(college).Error; err != nil {
		return err
	}

	pages := services.NewPageService(s.db)
	if _, err := pages.EnsureStandardPages(college); err != nil {
		return err
	}

	log.Printf("✅ Created root college: %s\n", college.Name)
	return nil
}
