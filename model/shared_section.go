package model

import "gorm.io/datatypes"

// SharedSection is a reusable content block owned by no single page. It is
// attached to pages through PageSharedSection, which carries a per-attachment
// sort order so the same block can sit at different positions on each page.
type SharedSection struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	SectionType     string `gorm:"type:varchar(50);not null" json:"section_type"`
	SectionTitle    string `gorm:"type:varchar(255)" json:"section_title"`
	SectionSubtitle string `gorm:"type:varchar(255)" json:"section_subtitle"`
	SortOrder       int    `gorm:"default:0" json:"sort_order"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Items []SharedSectionItem `gorm:"foreignKey:SharedSectionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Pages []PageSharedSection `gorm:"foreignKey:SharedSectionID;constraint:OnDelete:CASCADE" json:"-"`
}

// SharedSectionItem mirrors SectionItem for shared sections.
type SharedSectionItem struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	SharedSectionID uint              `gorm:"not null;index" json:"shared_section_id"`
	Title           string            `gorm:"type:varchar(255)" json:"title"`
	Subtitle        string            `gorm:"type:varchar(255)" json:"subtitle"`
	Description     string            `gorm:"type:text" json:"description"`
	ImageURL        string            `gorm:"type:varchar(1024)" json:"image_url"`
	VideoURL        string            `gorm:"type:varchar(1024)" json:"video_url"`
	CTAText         string            `gorm:"type:varchar(255)" json:"cta_text"`
	CTALink         string            `gorm:"type:varchar(1024)" json:"cta_link"`
	ExtraData       datatypes.JSONMap `gorm:"type:jsonb" json:"extra_data,omitempty"`
	SortOrder       int               `gorm:"default:0" json:"sort_order"`

	Section SharedSection `gorm:"foreignKey:SharedSectionID" json:"-"`
}

// PageSharedSection attaches a shared section to a page with its own sort
// order within that page.
type PageSharedSection struct {
	PageID          uint `gorm:"primaryKey" json:"page_id"`
	SharedSectionID uint `gorm:"primaryKey" json:"shared_section_id"`
	SortOrder       int  `gorm:"default:0" json:"sort_order"`

	// Relationships
	Page          Page          `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`
	SharedSection SharedSection `gorm:"foreignKey:SharedSectionID;constraint:OnDelete:CASCADE" json:"shared_section,omitempty"`
}

// TableName keeps the association table name of the original schema.
func (PageSharedSection) TableName() string {
	return "page_shared_sections"
}
