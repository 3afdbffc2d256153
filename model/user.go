package model

import "time"

// User roles
const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleCollegeAdmin = "COLLEGE_ADMIN"
)

// User is an admin back-office account. CollegeID scopes college admins to
// one tenant; the bootstrap SUPER_ADMIN has no college scope.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(50);not null;default:'COLLEGE_ADMIN'" json:"role"`
	CollegeID    *uint     `json:"college_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	College *College `gorm:"foreignKey:CollegeID" json:"-"`
}
