package model

import (
	"time"
)

// College represents a tenant: an institute that owns a subset of the
// content rows. Colleges form an optional parent/child tree via ParentID.
type College struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ParentID            *uint     `gorm:"index" json:"parent_id"`
	Name                string    `gorm:"not null" json:"name"`
	Slug                string    `gorm:"uniqueIndex;not null" json:"slug"`
	Subdomain           *string   `gorm:"uniqueIndex" json:"subdomain"`
	LogoURL             string    `gorm:"type:varchar(1024)" json:"logo_url"`
	ShortDescription    string    `gorm:"type:text" json:"short_description"`
	ThemePrimaryColor   string    `gorm:"type:varchar(20)" json:"theme_primary_color"`
	ThemeSecondaryColor string    `gorm:"type:varchar(20)" json:"theme_secondary_color"`
	IsParent            bool      `gorm:"default:false" json:"is_parent"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relationships
	Parent   *College  `gorm:"foreignKey:ParentID" json:"-"`
	Children []College `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
	Pages    []Page    `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Courses  []Course  `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Faculty  []Faculty `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsChild reports whether the college sits under another college in the tree.
func (c *College) IsChild() bool {
	return c.ParentID != nil
}
