package model

import "gorm.io/datatypes"

// Menu locations
const (
	MenuLocationMain   = "main"
	MenuLocationFooter = "footer"
	MenuLocationAdmin  = "admin"
)

// MenuItem is a node in the site navigation tree. URL overrides the link
// derived from the referenced page or college when set.
type MenuItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Slug      string `gorm:"type:varchar(255)" json:"slug"`
	Location  string `gorm:"type:varchar(50);not null;default:'main'" json:"location"`
	URL       string `gorm:"type:varchar(1024)" json:"url"`
	PageID    *uint  `json:"page_id"`
	CollegeID *uint  `json:"college_id"`
	ParentID  *uint  `gorm:"index" json:"parent_id"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Parent   *MenuItem  `gorm:"foreignKey:ParentID" json:"-"`
	Children []MenuItem `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
}

// Media types
const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
)

// MediaAsset is an entry in the media library used by pages and sections.
type MediaAsset struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	FileURL   string            `gorm:"type:varchar(1024);not null" json:"file_url"`
	Title     string            `gorm:"type:varchar(255)" json:"title"`
	AltText   string            `gorm:"type:varchar(255)" json:"alt_text"`
	MediaType string            `gorm:"type:varchar(50)" json:"media_type"`
	Meta      datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`
}
